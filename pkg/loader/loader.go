// Package loader reads table documents. Input formats are YAML, JSON,
// NDJSON, TOML and CSV; the format is taken from the file extension or
// sniffed from the content.
package loader

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names an input encoding.
type Format string

const (
	FormatAuto   Format = ""
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
	FormatCSV    Format = "csv"
)

// ErrEmptyInput is returned for blank input.
var ErrEmptyInput = errors.New("empty input")

// ParseFormat accepts a format name; "" and "auto" mean sniffing.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, "auto":
		return FormatAuto, nil
	case FormatJSON, FormatNDJSON, FormatYAML, FormatTOML, FormatCSV:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "jsonl":
		return FormatNDJSON, nil
	default:
		return FormatAuto, fmt.Errorf("unknown input format %q", s)
	}
}

// FormatFromPath maps a file extension to a format. Unknown extensions sniff.
func FormatFromPath(path string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return FormatAuto
	}
	return f
}

// LoadData parses input as format and returns one value per document.
// Mappings decode to Object so key order survives; sequences decode to []any.
func LoadData(input string, format Format) ([]any, error) {
	input = normalizeNewlines(strings.TrimSpace(input))
	if input == "" {
		return nil, ErrEmptyInput
	}
	if format == FormatAuto {
		format = sniff(input)
	}
	switch format {
	case FormatJSON:
		docs, err := loadJSON(input)
		if err != nil {
			// Flow-style YAML such as {a, b} starts like JSON.
			if yamlDocs, yerr := loadYAML(input); yerr == nil {
				return yamlDocs, nil
			}
			return nil, err
		}
		return docs, nil
	case FormatNDJSON:
		return loadNDJSON(input)
	case FormatTOML:
		return loadTOML(input)
	case FormatCSV:
		return loadCSV(input)
	default:
		return loadYAML(input)
	}
}

// LoadTable parses input and converts it to a table document.
func LoadTable(input string, format Format) (Table, error) {
	if format == FormatAuto {
		format = sniff(normalizeNewlines(strings.TrimSpace(input)))
	}
	docs, err := LoadData(input, format)
	if err != nil {
		return Table{}, err
	}
	if format == FormatCSV {
		return tableFromRecords(docs)
	}
	if len(docs) == 1 {
		return TableFromValue(docs[0])
	}
	return TableFromValue(docs)
}

// LoadTableFile reads path and converts it to a table document. An explicit
// format wins over the file extension.
func LoadTableFile(path string, format Format) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	if format == FormatAuto {
		format = FormatFromPath(path)
	}
	t, err := LoadTable(string(data), format)
	if err != nil {
		return Table{}, fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}

// LoadTableReader reads all of r and converts it to a table document.
func LoadTableReader(r io.Reader, format Format) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, fmt.Errorf("read input: %w", err)
	}
	return LoadTable(string(data), format)
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func sniff(input string) Format {
	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		return FormatYAML
	}
	lines := strings.Split(input, "\n")
	if len(lines) > 1 && isLikelyNDJSON(lines) {
		return FormatNDJSON
	}
	// [section] headers look like JSON arrays, so TOML is checked first.
	if isLikelyTOML(input) {
		return FormatTOML
	}
	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		return FormatJSON
	}
	if isLikelyCSV(lines) {
		return FormatCSV
	}
	return FormatYAML
}

// isLikelyNDJSON requires a majority of non-empty lines to open a JSON
// object or array, so YAML lists of bare items are not misread.
func isLikelyNDJSON(lines []string) bool {
	jsonCount := 0
	nonEmptyCount := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmptyCount++
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			jsonCount++
		}
	}
	return nonEmptyCount > 1 && jsonCount > nonEmptyCount/2
}

var (
	// [server], [[items]], ["table name"], [database.credentials]; not [1, 2, 3].
	tomlSectionPattern = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	// name = "value", "table name" = 1, database.host = "x"; not name: value.
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

func isLikelyTOML(input string) bool {
	sectionCount, keyValueCount, nonEmptyCount := 0, 0, 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmptyCount++
		if tomlSectionPattern.MatchString(line) {
			sectionCount++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValueCount++
		}
	}
	if sectionCount > 0 {
		return true
	}
	return nonEmptyCount > 0 && keyValueCount > nonEmptyCount/2
}

// isLikelyCSV wants at least two lines with the same non-zero comma count
// and no YAML mapping or list markers on the first line.
func isLikelyCSV(lines []string) bool {
	if len(lines) < 2 {
		return false
	}
	first := strings.TrimSpace(lines[0])
	if strings.HasPrefix(first, "- ") || strings.Contains(first, ": ") || strings.HasSuffix(first, ":") {
		return false
	}
	commas := strings.Count(first, ",")
	if commas == 0 {
		return false
	}
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.Count(line, ",") != commas {
			return false
		}
	}
	return true
}

func loadJSON(input string) ([]any, error) {
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()
	v, err := decodeOrdered(dec)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("invalid JSON: trailing data")
	}
	return []any{v}, nil
}

// loadNDJSON returns one value per line. Lines that are not JSON are kept
// as plain strings.
func loadNDJSON(input string) ([]any, error) {
	lines := strings.Split(input, "\n")
	results := make([]any, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		docs, err := loadJSON(line)
		if err != nil {
			results = append(results, line)
			continue
		}
		results = append(results, docs[0])
	}
	if len(results) == 0 {
		return nil, errors.New("no data found in input")
	}
	return results, nil
}

// loadYAML decodes every document of a YAML stream.
func loadYAML(input string) ([]any, error) {
	dec := yaml.NewDecoder(strings.NewReader(input))
	var results []any
	for {
		var node yaml.Node
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		v, err := fromYAMLNode(&node)
		if err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		if v != nil {
			results = append(results, v)
		}
	}
	if len(results) == 0 {
		return nil, errors.New("no documents found in YAML")
	}
	return results, nil
}

func loadTOML(input string) ([]any, error) {
	var data map[string]any
	if err := toml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return []any{fromMap(data)}, nil
}

// loadCSV returns one []any per record.
func loadCSV(input string) ([]any, error) {
	r := csv.NewReader(strings.NewReader(input))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	out := make([]any, len(records))
	for i, rec := range records {
		row := make([]any, len(rec))
		for j, v := range rec {
			row[j] = v
		}
		out[i] = row
	}
	return out, nil
}
