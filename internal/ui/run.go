package ui

import (
	tea "charm.land/bubbletea/v2"
)

// Run starts the program and blocks until the user quits. Extra options
// (custom IO, fixed window size) are passed to tea.NewProgram.
func Run(m *Model, opts ...tea.ProgramOption) error {
	if m.width > 0 && m.height > 0 {
		opts = append(opts, tea.WithWindowSize(m.width, m.height))
	}
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

// Snapshot applies keys and returns the resulting screen, for --snapshot.
func Snapshot(m *Model, keys []string) string {
	ApplyKeys(m, keys)
	return m.Render()
}
