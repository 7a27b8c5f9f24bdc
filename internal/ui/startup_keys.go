package ui

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ApplyStartupKeys feeds scripted input to the model before it is shown.
// Tokens are Vim-like keys ("<Tab>", "<S-Right>", "<C-c>"), mouse steps
// ("<press:X,Y>", "<move:X,Y>", "<release:X,Y>") and literal text. A leading
// backslash makes the whole token literal.
func ApplyStartupKeys(m *Model, keys []string) {
	if len(keys) == 0 || m == nil {
		return
	}
	for _, raw := range keys {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		if strings.HasPrefix(token, `\`) {
			typeText(m, strings.TrimPrefix(token, `\`))
			continue
		}
		for _, segment := range parseTokenSegments(token) {
			if !segment.isVimKey {
				typeText(m, segment.text)
				continue
			}
			if msg, ok := mouseMsgFromToken(segment.text); ok {
				m.Update(msg)
				continue
			}
			if msgs, ok := keyMsgsFromToken(segment.text); ok {
				for _, msg := range msgs {
					m.Update(msg)
				}
				continue
			}
			typeText(m, segment.text)
		}
	}
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// tokenSegment is either a <...> key or a run of literal text.
type tokenSegment struct {
	text     string
	isVimKey bool
}

// parseTokenSegments splits "<Tab>ll" into "<Tab>" and "ll".
func parseTokenSegments(token string) []tokenSegment {
	var segments []tokenSegment
	remaining := token
	for len(remaining) > 0 {
		startIdx := strings.Index(remaining, "<")
		if startIdx == -1 {
			segments = append(segments, tokenSegment{text: remaining})
			break
		}
		if startIdx > 0 {
			segments = append(segments, tokenSegment{text: remaining[:startIdx]})
		}
		endIdx := strings.Index(remaining[startIdx:], ">")
		if endIdx == -1 {
			segments = append(segments, tokenSegment{text: remaining[startIdx:]})
			break
		}
		segments = append(segments, tokenSegment{text: remaining[startIdx : startIdx+endIdx+1], isVimKey: true})
		remaining = remaining[startIdx+endIdx+1:]
	}
	return segments
}

// keyMsgsFromToken parses a <...> key token.
func keyMsgsFromToken(token string) ([]tea.KeyPressMsg, bool) {
	if !strings.HasPrefix(token, "<") || !strings.HasSuffix(token, ">") {
		return nil, false
	}
	inner := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(token, "<"), ">"))
	switch inner {
	case "esc", "c-[", "escape":
		return []tea.KeyPressMsg{{Code: tea.KeyEscape}}, true
	case "cr", "enter", "return":
		return []tea.KeyPressMsg{{Code: tea.KeyEnter}}, true
	case "tab":
		return []tea.KeyPressMsg{{Code: tea.KeyTab}}, true
	case "s-tab":
		return []tea.KeyPressMsg{{Code: tea.KeyTab, Mod: tea.ModShift}}, true
	case "space":
		return []tea.KeyPressMsg{{Code: ' ', Text: " "}}, true
	case "left":
		return []tea.KeyPressMsg{{Code: tea.KeyLeft}}, true
	case "right":
		return []tea.KeyPressMsg{{Code: tea.KeyRight}}, true
	case "s-left":
		return []tea.KeyPressMsg{{Code: tea.KeyLeft, Mod: tea.ModShift}}, true
	case "s-right":
		return []tea.KeyPressMsg{{Code: tea.KeyRight, Mod: tea.ModShift}}, true
	case "up":
		return []tea.KeyPressMsg{{Code: tea.KeyUp}}, true
	case "down":
		return []tea.KeyPressMsg{{Code: tea.KeyDown}}, true
	case "c-c":
		return []tea.KeyPressMsg{{Code: 'c', Mod: tea.ModCtrl}}, true
	}
	return nil, false
}

// mouseMsgFromToken parses <press:X,Y>, <move:X,Y> and <release:X,Y>.
// Presses use the left button; <S-press:X,Y> holds shift.
func mouseMsgFromToken(token string) (tea.Msg, bool) {
	inner := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(token, "<"), ">"))
	name, coords, ok := strings.Cut(inner, ":")
	if !ok {
		return nil, false
	}
	xs, ys, ok := strings.Cut(coords, ",")
	if !ok {
		return nil, false
	}
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if errX != nil || errY != nil {
		return nil, false
	}
	mouse := tea.Mouse{X: x, Y: y, Button: tea.MouseLeft}
	if rest, found := strings.CutPrefix(name, "s-"); found {
		mouse.Mod = tea.ModShift
		name = rest
	}
	switch name {
	case "press":
		return tea.MouseClickMsg(mouse), true
	case "move":
		return tea.MouseMotionMsg(mouse), true
	case "release":
		return tea.MouseReleaseMsg(mouse), true
	}
	return nil, false
}
