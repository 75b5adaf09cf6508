package component

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rovshanmuradov/botpanel/internal/api"
	"github.com/rovshanmuradov/botpanel/internal/ui/style"
)

// StatusHeader shows what the bot is doing and how fresh the panel is.
type StatusHeader struct {
	endpoint string
	mode     string
	state    string
	symbol   string
	interval string
	lastSync time.Time
	now      func() time.Time
	width    int
	style    StatusHeaderStyle
}

// StatusHeaderStyle contains all styling for the status header
type StatusHeaderStyle struct {
	container lipgloss.Style
	title     lipgloss.Style
	label     lipgloss.Style
	running   lipgloss.Style
	paused    lipgloss.Style
	idle      lipgloss.Style
	stale     lipgloss.Style
}

// NewStatusHeader creates a new status header component
func NewStatusHeader(endpoint string) *StatusHeader {
	palette := style.DefaultPalette()

	return &StatusHeader{
		endpoint: endpoint,
		now:      time.Now,
		style: StatusHeaderStyle{
			container: lipgloss.NewStyle().
				Foreground(palette.Text).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(palette.Primary).
				Padding(0, 2),

			title: lipgloss.NewStyle().
				Foreground(palette.Primary).
				Bold(true),

			label: lipgloss.NewStyle().
				Foreground(palette.TextSecondary),

			running: lipgloss.NewStyle().
				Foreground(palette.Success).
				Bold(true),

			paused: lipgloss.NewStyle().
				Foreground(palette.Warning).
				Bold(true),

			idle: lipgloss.NewStyle().
				Foreground(palette.TextMuted),

			stale: lipgloss.NewStyle().
				Foreground(palette.Error),
		},
	}
}

// SetStatus picks the headline fields out of a status payload.
func (sh *StatusHeader) SetStatus(s api.BotStatus) {
	sh.mode = s.Field("mode")
	sh.state = s.Field("status")
	sh.symbol = s.Field("symbol")
	sh.interval = s.Field("interval")
}

// MarkSynced records a successful refresh.
func (sh *StatusHeader) MarkSynced(t time.Time) {
	sh.lastSync = t
}

// SetWidth sets the component width for responsive layout
func (sh *StatusHeader) SetWidth(width int) {
	sh.width = width
	if width > 4 {
		sh.style.container = sh.style.container.Width(width - 4)
	}
}

// View renders the status header
func (sh *StatusHeader) View() string {
	content := lipgloss.JoinHorizontal(
		lipgloss.Left,
		sh.style.title.Render("Bot Panel"),
		" | ",
		sh.style.label.Render(sh.endpoint),
		" | ",
		sh.renderState(),
		" | ",
		sh.style.label.Render(fmt.Sprintf("%s %s %s", orDash(sh.mode), orDash(sh.symbol), orDash(sh.interval))),
		" | ",
		sh.renderSync(),
	)
	return sh.style.container.Render(content)
}

func (sh *StatusHeader) renderState() string {
	switch sh.state {
	case "RUNNING":
		return sh.style.running.Render("● RUNNING")
	case "PAUSED":
		return sh.style.paused.Render("❚❚ PAUSED")
	case "":
		return sh.style.idle.Render("○ unknown")
	default:
		return sh.style.idle.Render("○ " + sh.state)
	}
}

func (sh *StatusHeader) renderSync() string {
	if sh.lastSync.IsZero() {
		return sh.style.stale.Render("never synced")
	}
	return sh.style.label.Render("synced " + humanize.RelTime(sh.lastSync, sh.now(), "ago", "from now"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
