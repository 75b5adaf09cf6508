package component

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/botpanel/internal/command"
	"github.com/stretchr/testify/assert"
)

func TestStartFormPrefillAndEdit(t *testing.T) {
	f := NewStartForm(command.StartParams{Mode: "BACKTEST", Interval: "1m"})
	assert.Equal(t, command.StartParams{Mode: "BACKTEST", Interval: "1m"}, f.Params())

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ETHUSDT")})
	assert.Equal(t, "ETHUSDT", f.Params().Symbol)

	f.SetValue("mode", "LIVE")
	assert.Equal(t, "LIVE", f.Params().Mode)

	f.Reset()
	assert.Equal(t, 0, f.focusIndex)
	assert.Contains(t, f.View(), "Start bot")
}
