package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// SnapshotConfig configures a single-frame render.
type SnapshotConfig struct {
	Options
	StartKeys []string
	// HideFooter drops the status and help lines.
	HideFooter bool
}

// RenderSnapshot builds a model, replays the start keys and returns one
// frame padded to the configured height. No-color snapshots are plain text.
func RenderSnapshot(cfg SnapshotConfig) string {
	opts := cfg.Options
	if cfg.HideFooter {
		opts.ShowHelp = false
	}
	m := New(opts)
	ApplyStartupKeys(m, cfg.StartKeys)
	out := m.Render()
	if cfg.NoColor {
		out = ansi.Strip(out)
	}
	lines := strings.Split(out, "\n")
	if cfg.HideFooter && len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	for len(lines) < m.height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
