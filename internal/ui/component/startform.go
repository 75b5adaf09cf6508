package component

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/botpanel/internal/command"
	"github.com/rovshanmuradov/botpanel/internal/ui/style"
)

const (
	fieldMode = iota
	fieldSymbol
	fieldInterval
	fieldCount
)

// StartForm collects the parameters of a start command. Values are passed
// through as typed; the bot validates them.
type StartForm struct {
	inputs     [fieldCount]textinput.Model
	labels     [fieldCount]string
	focusIndex int

	labelStyle   lipgloss.Style
	inputStyle   lipgloss.Style
	focusedStyle lipgloss.Style
}

// NewStartForm creates the form prefilled with defaults.
func NewStartForm(defaults command.StartParams) *StartForm {
	palette := style.DefaultPalette()

	f := &StartForm{
		labels: [fieldCount]string{"Mode", "Symbol", "Interval"},

		labelStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true),

		inputStyle: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted),

		focusedStyle: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary),
	}

	values := [fieldCount]string{defaults.Mode, defaults.Symbol, defaults.Interval}
	placeholders := [fieldCount]string{"BACKTEST", "BTCUSDT", "1m"}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Width = 24
		ti.Placeholder = placeholders[i]
		ti.SetValue(values[i])
		f.inputs[i] = ti
	}
	f.Reset()
	return f
}

// Reset moves focus back to the first field.
func (f *StartForm) Reset() {
	f.focusIndex = 0
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.inputs[0].Focus()
}

// Params returns the current field values.
func (f *StartForm) Params() command.StartParams {
	return command.StartParams{
		Mode:     f.inputs[fieldMode].Value(),
		Symbol:   f.inputs[fieldSymbol].Value(),
		Interval: f.inputs[fieldInterval].Value(),
	}
}

// SetValue sets a field by its label, case insensitive.
func (f *StartForm) SetValue(label, value string) {
	for i, l := range f.labels {
		if strings.EqualFold(l, label) {
			f.inputs[i].SetValue(value)
			return
		}
	}
}

// Update handles field navigation and typing.
func (f *StartForm) Update(msg tea.Msg) (*StartForm, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "tab", "down":
			f.focus((f.focusIndex + 1) % fieldCount)
			return f, nil
		case "shift+tab", "up":
			f.focus((f.focusIndex + fieldCount - 1) % fieldCount)
			return f, nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focusIndex], cmd = f.inputs[f.focusIndex].Update(msg)
	return f, cmd
}

func (f *StartForm) focus(i int) {
	f.inputs[f.focusIndex].Blur()
	f.focusIndex = i
	f.inputs[i].Focus()
}

// View renders the form
func (f *StartForm) View() string {
	var content strings.Builder
	content.WriteString(style.Title().Render("Start bot"))
	content.WriteString("\n")

	for i := range f.inputs {
		fieldStyle := f.inputStyle
		if i == f.focusIndex {
			fieldStyle = f.focusedStyle
		}
		content.WriteString(f.labelStyle.Render(f.labels[i]))
		content.WriteString("\n")
		content.WriteString(fieldStyle.Render(f.inputs[i].View()))
		content.WriteString("\n")
	}
	content.WriteString(lipgloss.NewStyle().Foreground(style.DefaultPalette().TextMuted).
		Render("enter submit • tab next field • esc cancel"))
	return content.String()
}
