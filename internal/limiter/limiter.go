// Package limiter selects a window of body rows before a table is shown.
package limiter

import (
	"errors"
	"fmt"
)

// Config holds the row window: skip Offset rows, then keep Limit rows; or
// keep only the last Tail rows. Zero disables a field.
type Config struct {
	Limit  int
	Offset int
	Tail   int
}

// Validate rejects negative values and Limit combined with Tail. Offset is
// ignored when Tail is set.
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", c.Tail)
	}
	if c.Limit > 0 && c.Tail > 0 {
		return errors.New("--limit and --tail are mutually exclusive")
	}
	return nil
}

// IsActive reports whether any limiting is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// Apply returns the selected window of rows. The result shares the backing
// array of rows.
func Apply[T any](c Config, rows []T) []T {
	if !c.IsActive() {
		return rows
	}
	n := len(rows)
	if c.Tail > 0 {
		return rows[max(n-c.Tail, 0):]
	}
	start := min(c.Offset, n)
	end := n
	if c.Limit > 0 {
		end = min(start+c.Limit, n)
	}
	return rows[start:end]
}
