package loader

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDataFormats(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		format  Format
		wantLen int
		wantObj bool
	}{
		{name: "json object", input: `{"name": "test", "value": 42}`, wantLen: 1, wantObj: true},
		{name: "json array", input: `[1, 2, 3]`, wantLen: 1},
		{name: "yaml object", input: "name: test\nvalue: 42", wantLen: 1, wantObj: true},
		{name: "multi-document yaml", input: "name: Alice\n---\nname: Bob", wantLen: 2, wantObj: true},
		{name: "ndjson", input: "{\"id\":1}\n{\"id\":2}\n{\"id\":3}", wantLen: 3, wantObj: true},
		{name: "toml", input: "[server]\nhost = \"localhost\"", wantLen: 1, wantObj: true},
		{name: "explicit csv", input: "a,b\n1,2\n3,4", format: FormatCSV, wantLen: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadData(tt.input, tt.format)
			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)
			if tt.wantObj {
				assert.IsType(t, &Object{}, got[0])
			}
		})
	}
}

func TestLoadJSONKeepsKeyOrder(t *testing.T) {
	got, err := LoadData(`{"b": 1, "a": {"z": true, "y": null}, "c": "x"}`, FormatAuto)
	require.NoError(t, err)
	obj := got[0].(*Object)

	assert.Equal(t, []string{"b", "a", "c"}, obj.Keys)
	assert.Equal(t, json.Number("1"), obj.Values["b"])
	nested := obj.Values["a"].(*Object)
	assert.Equal(t, []string{"z", "y"}, nested.Keys)
	assert.Nil(t, nested.Values["y"])
}

func TestLoadYAMLKeepsKeyOrder(t *testing.T) {
	got, err := LoadData("zeta: 1\nalpha: two\nmid: [1, 2]\n", FormatYAML)
	require.NoError(t, err)
	obj := got[0].(*Object)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys)
	assert.Equal(t, 1, obj.Values["zeta"])
	assert.Equal(t, []any{1, 2}, obj.Values["mid"])
}

func TestLoadYAMLResolvesAliases(t *testing.T) {
	got, err := LoadData("base: &b {x: 1}\ncopy: *b\n", FormatYAML)
	require.NoError(t, err)
	obj := got[0].(*Object)
	copied := obj.Values["copy"].(*Object)
	assert.Equal(t, []string{"x"}, copied.Keys)
}

func TestInvalidJSONFallsBackToFlowYAML(t *testing.T) {
	got, err := LoadData(`{invalid}`, FormatAuto)
	require.NoError(t, err)
	obj := got[0].(*Object)
	assert.Equal(t, []string{"invalid"}, obj.Keys)
	assert.Nil(t, obj.Values["invalid"])
}

func TestLoadJSONRejectsTrailingData(t *testing.T) {
	_, err := loadJSON(`{"a": 1} {"b": 2}`)
	require.Error(t, err)
}

func TestLoadNDJSONWithPlainStrings(t *testing.T) {
	input := `{"id": 1, "message": "first"}
this is a plain string line
{"id": 2, "message": "second"}
another string
{"id": 3, "message": "third"}`

	got, err := LoadData(input, FormatAuto)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.IsType(t, &Object{}, got[0])
	assert.Equal(t, "this is a plain string line", got[1])
	assert.IsType(t, &Object{}, got[2])
	assert.Equal(t, "another string", got[3])
}

func TestLoadNDJSONWithCarriageReturns(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "progress overwrite", input: "{\"level\":\"debug\"}\r❌ error message\n{\"level\":\"info\"}", want: 3},
		{name: "crlf", input: "{\"id\":1}\r\n{\"id\":2}\r\n{\"id\":3}", want: 3},
		{name: "mixed", input: "{\"a\":1}\n{\"b\":2}\r\n{\"c\":3}\r{\"d\":4}", want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadData(tt.input, FormatAuto)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestLoadDataEmpty(t *testing.T) {
	_, err := LoadData("  \n\t ", FormatAuto)
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestLoadDataErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		want   string
	}{
		{name: "json", input: `[1, 2`, format: FormatJSON, want: "invalid JSON"},
		{name: "toml", input: "a = = 1", format: FormatTOML, want: "invalid TOML"},
		{name: "csv", input: "a,\"b\n1,2", format: FormatCSV, want: "invalid CSV"},
		{name: "yaml", input: "a: [1, 2", format: FormatYAML, want: "invalid YAML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadData(tt.input, tt.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSniff(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Format
	}{
		{name: "csv", input: "name,age\nada,36\nbob,40", want: FormatCSV},
		{name: "yaml flow values with commas", input: "key: a,b\nother: c,d", want: FormatYAML},
		{name: "yaml list", input: "- a,b\n- c,d", want: FormatYAML},
		{name: "single csv line", input: "a,b,c", want: FormatYAML},
		{name: "ragged commas", input: "a,b\nc", want: FormatYAML},
		{name: "json", input: `{"a": 1}`, want: FormatJSON},
		{name: "toml section", input: "[server]\nport = 1", want: FormatTOML},
		{name: "multi-doc", input: "a: 1\n---\nb: 2", want: FormatYAML},
		{name: "ndjson", input: "{}\n{}", want: FormatNDJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sniff(tt.input))
		})
	}
}

func TestYAMLBareListIsNotNDJSON(t *testing.T) {
	input := `linters:
  enable:
    - asciicheck
    - bodyclose
    - dogsled
    - errcheck`

	got, err := LoadData(input, FormatAuto)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.IsType(t, &Object{}, got[0])
}

func TestIsLikelyTOML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "section header", input: "[server]\nhost = \"localhost\"", want: true},
		{name: "array of tables", input: "[[rows]]\nname = \"ada\"", want: true},
		{name: "key-value assignments", input: "name = \"test\"\nvalue = 42\nenabled = true", want: true},
		{name: "quoted key assignment", input: "\"table name\" = \"value\"\n\"another-key\" = 42", want: true},
		{name: "dotted section header", input: "[database.credentials]\nusername = \"admin\"", want: true},
		{name: "yaml", input: "name: test\nvalue: 42", want: false},
		{name: "json object", input: `{"name": "test"}`, want: false},
		{name: "json array", input: `[1, 2, 3]`, want: false},
		{name: "yaml list", input: "- item1\n- item2", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isLikelyTOML(tt.input), "isLikelyTOML(%q)", tt.input)
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatAuto},
		{in: "auto", want: FormatAuto},
		{in: "JSON", want: FormatJSON},
		{in: "yml", want: FormatYAML},
		{in: "jsonl", want: FormatNDJSON},
		{in: " csv ", want: FormatCSV},
		{in: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatCSV, FormatFromPath("/data/people.csv"))
	assert.Equal(t, FormatYAML, FormatFromPath("table.yml"))
	assert.Equal(t, FormatTOML, FormatFromPath("table.toml"))
	assert.Equal(t, FormatAuto, FormatFromPath("table.txt"))
	assert.Equal(t, FormatAuto, FormatFromPath("README"))
}

func TestLoadTableFileHonorsExtension(t *testing.T) {
	dir := t.TempDir()
	// A single CSV line would sniff as YAML; the extension decides.
	path := filepath.Join(dir, "one.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,age\n"), 0o600))

	tbl, err := LoadTableFile(path, FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, [][]Header{{{Text: "name", Span: 1}, {Text: "age", Span: 1}}}, tbl.Headers)
	assert.Empty(t, tbl.Rows)
}

func TestLoadTableFileErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadTableFile(filepath.Join(dir, "missing.json"), FormatAuto)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read ")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"rows": 3}`), 0o600))
	_, err = LoadTableFile(bad, FormatAuto)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load "+bad)
	assert.Contains(t, err.Error(), "rows must be a list")
}

func TestLoadTableReader(t *testing.T) {
	tbl, err := LoadTableReader(strings.NewReader(`[{"a": 1}, {"a": 2}]`), FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1"}, {"2"}}, tbl.Rows)
}
