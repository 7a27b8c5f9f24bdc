// Package resize implements interactive column resizing for tables: a column
// mapper aware of spanned headers, natural width measurement, pixel-exact
// proportional scaling, layout locking, and a per-boundary pointer/keyboard
// state machine with two resize policies.
//
// The package never talks to a rendering engine directly. Hosts implement
// Surface for their table and feed input through Document and Handle.
package resize

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects how a drag distributes width.
type Mode string

const (
	// ModeShift grows or shrinks the whole table with the dragged column.
	ModeShift Mode = "shift"
	// ModeDistribute borrows width from the right neighbor and keeps the
	// table width constant.
	ModeDistribute Mode = "distribute"
)

// ModeAttr is the table-level data attribute read at attach time.
const ModeAttr = "data-resize-mode"

const (
	DefaultMinWidth      = 30
	DefaultDragThreshold = 3
	DefaultKeyStep       = 10
	DefaultKeyLargeStep  = 50
	DefaultCellPadding   = 16
)

// CSS-style markers applied while a drag is active.
const (
	DraggingClass = "dragging"
	ActiveClass   = "col-resize-active"
)

// ErrInvalidMode is returned by ParseMode for anything other than shift or distribute.
var ErrInvalidMode = errors.New("invalid resize mode")

// Config holds the resize parameters for one attach/detach cycle.
type Config struct {
	Mode          Mode
	MinWidth      int
	DragThreshold int
	KeyStep       int
	KeyLargeStep  int
	// CellPadding is added to each body cell's content width when measuring.
	CellPadding int
}

// DefaultConfig returns the stock configuration: shift mode, 30px floor, 3px threshold.
func DefaultConfig() Config {
	return Config{
		Mode:          ModeShift,
		MinWidth:      DefaultMinWidth,
		DragThreshold: DefaultDragThreshold,
		KeyStep:       DefaultKeyStep,
		KeyLargeStep:  DefaultKeyLargeStep,
		CellPadding:   DefaultCellPadding,
	}
}

// Validate reports configuration values the engine cannot work with.
func (c Config) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if c.MinWidth <= 0 {
		return fmt.Errorf("min width must be positive, got %d", c.MinWidth)
	}
	if c.DragThreshold < 0 {
		return fmt.Errorf("drag threshold must not be negative, got %d", c.DragThreshold)
	}
	if c.KeyStep <= 0 || c.KeyLargeStep <= 0 {
		return fmt.Errorf("key steps must be positive, got %d/%d", c.KeyStep, c.KeyLargeStep)
	}
	if c.CellPadding < 0 {
		return fmt.Errorf("cell padding must not be negative, got %d", c.CellPadding)
	}
	return nil
}

// ParseMode parses a mode name strictly.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeShift:
		return ModeShift, nil
	case ModeDistribute:
		return ModeDistribute, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// ModeFromAttr resolves a declared attribute value, falling back to
// fallback (and then shift) when the value is missing or invalid.
func ModeFromAttr(value string, fallback Mode) Mode {
	if m, err := ParseMode(value); err == nil {
		return m
	}
	if m, err := ParseMode(string(fallback)); err == nil {
		return m
	}
	return ModeShift
}

// withDefaults fills zero values so a partially populated Config still works.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Mode == "" {
		c.Mode = d.Mode
	}
	if c.MinWidth <= 0 {
		c.MinWidth = d.MinWidth
	}
	if c.DragThreshold < 0 {
		c.DragThreshold = d.DragThreshold
	}
	if c.KeyStep <= 0 {
		c.KeyStep = d.KeyStep
	}
	if c.KeyLargeStep <= 0 {
		c.KeyLargeStep = d.KeyLargeStep
	}
	if c.CellPadding < 0 {
		c.CellPadding = 0
	}
	return c
}
