package ui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestParseTokenSegments(t *testing.T) {
	tests := []struct {
		token string
		want  []tokenSegment
	}{
		{token: "<Tab>ll", want: []tokenSegment{{text: "<Tab>", isVimKey: true}, {text: "ll"}}},
		{token: "m<S-Tab>", want: []tokenSegment{{text: "m"}, {text: "<S-Tab>", isVimKey: true}}},
		{token: "a<b", want: []tokenSegment{{text: "a"}, {text: "<b"}}},
		{token: "jj", want: []tokenSegment{{text: "jj"}}},
	}
	for _, tt := range tests {
		got := parseTokenSegments(tt.token)
		if len(got) != len(tt.want) {
			t.Fatalf("%q: got %d segments %+v, want %+v", tt.token, len(got), got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("%q: segment %d = %+v, want %+v", tt.token, i, got[i], tt.want[i])
			}
		}
	}
}

func TestKeyMsgsFromToken(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{token: "<Tab>", want: "tab"},
		{token: "<S-Tab>", want: "shift+tab"},
		{token: "<Right>", want: "right"},
		{token: "<S-Left>", want: "shift+left"},
		{token: "<Esc>", want: "esc"},
		{token: "<C-c>", want: "ctrl+c"},
	}
	for _, tt := range tests {
		msgs, ok := keyMsgsFromToken(tt.token)
		if !ok || len(msgs) != 1 {
			t.Fatalf("%s: expected one key, got %v (ok=%v)", tt.token, msgs, ok)
		}
		if got := msgs[0].String(); got != tt.want {
			t.Fatalf("%s: got %q, want %q", tt.token, got, tt.want)
		}
	}
	if _, ok := keyMsgsFromToken("<Nope>"); ok {
		t.Fatal("unknown token should not parse")
	}
}

func TestMouseMsgFromToken(t *testing.T) {
	msg, ok := mouseMsgFromToken("<press:12,1>")
	if !ok {
		t.Fatal("press token should parse")
	}
	click, isClick := msg.(tea.MouseClickMsg)
	if !isClick || click.X != 12 || click.Y != 1 || click.Button != tea.MouseLeft {
		t.Fatalf("unexpected press message %#v", msg)
	}

	msg, ok = mouseMsgFromToken("<S-press:3,0>")
	if !ok || msg.(tea.MouseClickMsg).Mod&tea.ModShift == 0 {
		t.Fatalf("shift press should carry the modifier, got %#v", msg)
	}
	if _, ok := mouseMsgFromToken("<move:1>"); ok {
		t.Fatal("missing coordinate should not parse")
	}
	if _, ok := mouseMsgFromToken("<drag:1,2>"); ok {
		t.Fatal("unknown action should not parse")
	}
}

func TestApplyStartupKeysResizes(t *testing.T) {
	m := New(testOptions())
	before := m.Table().ColumnWidth(1)

	ApplyStartupKeys(m, []string{"<Tab><Tab>", "ll", "<S-Right>"})

	if got := m.Table().ColumnWidth(1); got != before+7 {
		t.Fatalf("column 1 width = %d, want %d", got, before+7)
	}
}

func TestApplyStartupKeysDrags(t *testing.T) {
	m := New(testOptions())
	x := m.Table().BoundaryX(m.Table().Handles()[0])
	before := m.Table().ColumnWidth(0)

	ApplyStartupKeys(m, []string{
		"<press:" + itoa(x) + ",1>",
		"<move:" + itoa(x+4) + ",1>",
		"<release:" + itoa(x+4) + ",1>",
	})

	if got := m.Table().ColumnWidth(0); got != before+4 {
		t.Fatalf("column 0 width = %d, want %d", got, before+4)
	}
}

func TestApplyStartupKeysLiteral(t *testing.T) {
	m := New(testOptions())
	ApplyStartupKeys(m, []string{`\m`})
	if m.Status() != "resize mode: distribute" {
		t.Fatalf("literal m should toggle the mode, status %q", m.Status())
	}
	ApplyStartupKeys(nil, []string{"<Tab>"})
}
