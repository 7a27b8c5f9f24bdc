package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Header is one header cell. Span is the number of columns it covers.
type Header struct {
	Text string
	Span int
}

// Table is a table document ready for display.
type Table struct {
	// Headers holds the header rows, top to bottom. It may be empty, in
	// which case the first body row acts as the header.
	Headers [][]Header
	Rows    [][]string
	// Mode is the requested resize mode, "" when the document sets none.
	Mode string
}

// Columns is the widest of the header rows and body rows.
func (t Table) Columns() int {
	n := 0
	for _, row := range t.Headers {
		sum := 0
		for _, h := range row {
			sum += max(h.Span, 1)
		}
		n = max(n, sum)
	}
	for _, row := range t.Rows {
		n = max(n, len(row))
	}
	return n
}

// TableFromValue converts a decoded document into a table:
//   - a mapping with a "rows" key is an explicit document with optional
//     "headers" (one row, or a list of rows whose cells may be
//     {text, span}) and "mode";
//   - any other mapping becomes a key/value table;
//   - a list of mappings becomes one column per key;
//   - a list of lists becomes header-less rows;
//   - other lists become a single "value" column.
func TableFromValue(v any) (Table, error) {
	switch x := v.(type) {
	case nil:
		return Table{}, ErrEmptyInput
	case *Object:
		if rows, ok := x.Get("rows"); ok {
			return explicitTable(x, rows)
		}
		return propertyTable(x), nil
	case []any:
		return listTable(x)
	default:
		return Table{
			Headers: [][]Header{{{Text: "value", Span: 1}}},
			Rows:    [][]string{{CellText(x)}},
		}, nil
	}
}

func explicitTable(doc *Object, rowsValue any) (Table, error) {
	var t Table
	if mode, ok := doc.Get("mode"); ok && mode != nil {
		t.Mode = CellText(mode)
	}
	if headers, ok := doc.Get("headers"); ok && headers != nil {
		rows, err := headerRows(headers)
		if err != nil {
			return Table{}, err
		}
		t.Headers = rows
	}

	list, ok := rowsValue.([]any)
	if !ok {
		return Table{}, fmt.Errorf("rows must be a list, got %T", rowsValue)
	}
	var keys []string
	if len(t.Headers) > 0 {
		for _, h := range t.Headers[len(t.Headers)-1] {
			keys = append(keys, h.Text)
		}
	} else if objectRows(list) {
		keys = unionKeys(list)
		t.Headers = [][]Header{textHeaders(keys)}
	}
	for i, item := range list {
		switch r := item.(type) {
		case []any:
			t.Rows = append(t.Rows, cellTexts(r))
		case *Object:
			t.Rows = append(t.Rows, rowByKeys(r, keys))
		default:
			if item == nil {
				return Table{}, fmt.Errorf("row %d is empty", i)
			}
			t.Rows = append(t.Rows, []string{CellText(item)})
		}
	}
	return t, nil
}

func headerRows(v any) ([][]Header, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("headers must be a list, got %T", v)
	}
	nested := len(list) > 0
	for _, item := range list {
		if _, isRow := item.([]any); !isRow {
			nested = false
			break
		}
	}
	if !nested {
		row, err := headerRow(list)
		if err != nil {
			return nil, err
		}
		return [][]Header{row}, nil
	}
	out := make([][]Header, 0, len(list))
	for i, item := range list {
		row, err := headerRow(item.([]any))
		if err != nil {
			return nil, fmt.Errorf("header row %d: %w", i, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func headerRow(cells []any) ([]Header, error) {
	row := make([]Header, 0, len(cells))
	for _, c := range cells {
		h := Header{Span: 1}
		if obj, ok := c.(*Object); ok {
			text, _ := obj.Get("text")
			h.Text = CellText(text)
			if span, ok := obj.Get("span"); ok && span != nil {
				n, err := toInt(span)
				if err != nil {
					return nil, fmt.Errorf("header %q span: %w", h.Text, err)
				}
				if n < 1 {
					return nil, fmt.Errorf("header %q span must be at least 1, got %d", h.Text, n)
				}
				h.Span = n
			}
		} else {
			h.Text = CellText(c)
		}
		row = append(row, h)
	}
	return row, nil
}

func propertyTable(obj *Object) Table {
	t := Table{Headers: [][]Header{textHeaders([]string{"key", "value"})}}
	for _, k := range obj.Keys {
		t.Rows = append(t.Rows, []string{k, CellText(obj.Values[k])})
	}
	return t
}

func listTable(items []any) (Table, error) {
	if len(items) == 0 {
		return Table{}, errors.New("no rows in input")
	}
	if objectRows(items) {
		keys := unionKeys(items)
		t := Table{Headers: [][]Header{textHeaders(keys)}}
		for _, item := range items {
			t.Rows = append(t.Rows, rowByKeys(item.(*Object), keys))
		}
		return t, nil
	}
	if listRows(items) {
		var t Table
		for _, item := range items {
			t.Rows = append(t.Rows, cellTexts(item.([]any)))
		}
		return t, nil
	}
	t := Table{Headers: [][]Header{textHeaders([]string{"value"})}}
	for _, item := range items {
		t.Rows = append(t.Rows, []string{CellText(item)})
	}
	return t, nil
}

// tableFromRecords treats the first CSV record as the header row.
func tableFromRecords(records []any) (Table, error) {
	if len(records) == 0 {
		return Table{}, errors.New("no records in CSV input")
	}
	header := cellTexts(records[0].([]any))
	t := Table{Headers: [][]Header{textHeaders(header)}}
	for _, rec := range records[1:] {
		t.Rows = append(t.Rows, cellTexts(rec.([]any)))
	}
	return t, nil
}

func objectRows(items []any) bool {
	for _, item := range items {
		if _, ok := item.(*Object); !ok {
			return false
		}
	}
	return len(items) > 0
}

func listRows(items []any) bool {
	for _, item := range items {
		if _, ok := item.([]any); !ok {
			return false
		}
	}
	return len(items) > 0
}

// unionKeys lists the keys of every object in order of first appearance.
func unionKeys(items []any) []string {
	seen := map[string]bool{}
	var keys []string
	for _, item := range items {
		obj, ok := item.(*Object)
		if !ok {
			continue
		}
		for _, k := range obj.Keys {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

func rowByKeys(obj *Object, keys []string) []string {
	row := make([]string, len(keys))
	for i, k := range keys {
		row[i] = CellText(obj.Values[k])
	}
	return row
}

func textHeaders(texts []string) []Header {
	row := make([]Header, len(texts))
	for i, s := range texts {
		row[i] = Header{Text: s, Span: 1}
	}
	return row
}

func cellTexts(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = CellText(v)
	}
	return out
}

// CellText renders a decoded value as single-line cell text. Nested
// structures render as compact JSON.
func CellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.Join(strings.Fields(x), " ")
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format(time.RFC3339)
	case *Object, []any:
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(data)
	default:
		return fmt.Sprint(x)
	}
}

func toInt(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		if x != float64(int(x)) {
			return 0, fmt.Errorf("%v is not a whole number", x)
		}
		return int(x), nil
	case json.Number:
		n, err := strconv.Atoi(x.String())
		if err != nil {
			return 0, fmt.Errorf("%q is not a whole number", x.String())
		}
		return n, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, fmt.Errorf("%q is not a whole number", x)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unsupported span type %T", v)
	}
}
