package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ApplyKeys feeds simulated key presses to m. Tokens in angle brackets name
// special keys ("<Left>", "<Del>", "<C-c>"); any other text is typed one rune
// at a time, so "xx" presses x twice.
func ApplyKeys(m *Model, keys []string) {
	for _, raw := range keys {
		for _, msg := range parseKeys(strings.TrimSpace(raw)) {
			m.Update(msg)
		}
	}
}

func parseKeys(token string) []tea.KeyPressMsg {
	var out []tea.KeyPressMsg
	for token != "" {
		start := strings.Index(token, "<")
		end := strings.Index(token, ">")
		if start != 0 || end < 0 {
			lit := token
			if start > 0 {
				lit = token[:start]
			}
			for _, r := range lit {
				out = append(out, tea.KeyPressMsg{Code: r, Text: string(r)})
			}
			token = token[len(lit):]
			continue
		}
		if msg, ok := namedKey(token[1:end]); ok {
			out = append(out, msg)
		}
		token = token[end+1:]
	}
	return out
}

func namedKey(name string) (tea.KeyPressMsg, bool) {
	switch strings.ToLower(name) {
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}, true
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}, true
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}, true
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}, true
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}, true
	case "del", "delete":
		return tea.KeyPressMsg{Code: tea.KeyDelete}, true
	case "bs", "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}, true
	case "esc", "escape":
		return tea.KeyPressMsg{Code: tea.KeyEscape}, true
	case "c-c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}, true
	}
	return tea.KeyPressMsg{}, false
}
