package resize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ModeShift, cfg.Mode)
	assert.Equal(t, 30, cfg.MinWidth)
	assert.Equal(t, 3, cfg.DragThreshold)
	require.NoError(t, cfg.Validate())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Distribute ")
	require.NoError(t, err)
	assert.Equal(t, ModeDistribute, m)

	_, err = ParseMode("stretch")
	require.ErrorIs(t, err, ErrInvalidMode)
}

func TestModeFromAttr(t *testing.T) {
	assert.Equal(t, ModeDistribute, ModeFromAttr("distribute", ModeShift))
	assert.Equal(t, ModeDistribute, ModeFromAttr("", ModeDistribute))
	assert.Equal(t, ModeShift, ModeFromAttr("bogus", "also-bogus"))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "mode", mutate: func(c *Config) { c.Mode = "wide" }},
		{name: "min width", mutate: func(c *Config) { c.MinWidth = 0 }},
		{name: "threshold", mutate: func(c *Config) { c.DragThreshold = -1 }},
		{name: "step", mutate: func(c *Config) { c.KeyStep = 0 }},
		{name: "padding", mutate: func(c *Config) { c.CellPadding = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDocument_DispatchOrderAndRemoval(t *testing.T) {
	doc := NewDocument()
	var order []string
	offA := doc.On(Click, func(*Event) { order = append(order, "a") })
	doc.OnCapture(Click, func(*Event) { order = append(order, "capture") })
	doc.On(Click, func(*Event) { order = append(order, "b") })

	doc.Dispatch(&Event{Kind: Click})
	assert.Equal(t, []string{"capture", "a", "b"}, order)

	offA()
	offA()
	order = nil
	doc.Dispatch(&Event{Kind: Click})
	assert.Equal(t, []string{"capture", "b"}, order)
	assert.Equal(t, 2, doc.ListenerCount(Click))
}

func TestDocument_StopPropagation(t *testing.T) {
	doc := NewDocument()
	reached := false
	doc.On(MouseUp, func(ev *Event) { ev.StopPropagation() })
	doc.On(MouseUp, func(*Event) { reached = true })

	doc.Dispatch(&Event{Kind: MouseUp})
	assert.False(t, reached)
}
