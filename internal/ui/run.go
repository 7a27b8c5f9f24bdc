package ui

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

// Run starts the interactive program. A zero width or height is taken from
// the terminal, falling back to 80x24. Extra program options, such as
// custom IO, are passed to tea.NewProgram.
func Run(opts Options, startKeys []string, progOpts ...tea.ProgramOption) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if opts.Width <= 0 {
				opts.Width = w
			}
			if opts.Height <= 0 {
				opts.Height = h
			}
		}
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	progOpts = append(progOpts, tea.WithWindowSize(opts.Width, opts.Height))

	m := New(opts)
	ApplyStartupKeys(m, startKeys)

	prog := tea.NewProgram(m, progOpts...)
	final, err := prog.Run()
	if fm, ok := final.(*Model); ok && fm != nil {
		fm.mgr.Detach(fm.table)
	}
	return err
}
