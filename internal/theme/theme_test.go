package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/nhle/tgift/internal/model"
)

func TestNew_PicksPalette(t *testing.T) {
	s := model.DefaultSettings()
	assert.Equal(t, Dark, New(s).Palette)

	s.DarkMode = false
	assert.Equal(t, Light, New(s).Palette)
}

func TestDensityFor(t *testing.T) {
	assert.Equal(t, 1, DensityFor(model.FontSmall).MessageLines)
	assert.Equal(t, 4, DensityFor(model.FontExtraLarge).MessageLines)
	assert.Equal(t, DensityFor(model.FontMedium), DensityFor(-1))
	assert.Equal(t, DensityFor(model.FontMedium), DensityFor(9))

	for size := model.FontSmall; size < model.FontExtraLarge; size++ {
		assert.Less(t, DensityFor(size).MessageLines, DensityFor(size+1).MessageLines)
	}
}

func TestConnectionStyle(t *testing.T) {
	th := New(model.DefaultSettings())
	off := false

	tests := []struct {
		name string
		st   model.ConnectionStatus
		want lipgloss.Color
	}{
		{"connected", model.ConnectionStatus{Connected: true}, Dark.Success},
		{"telegram offline", model.ConnectionStatus{Connected: true, Telegram: &off}, Dark.Warning},
		{"http failure", model.ConnectionStatus{Failure: model.FailureHTTP}, Dark.Warning},
		{"transport failure", model.ConnectionStatus{Failure: model.FailureTransport}, Dark.Error},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, th.ConnectionStyle(tt.st).GetForeground())
		})
	}
}
