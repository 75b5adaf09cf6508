package component

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/botpanel/internal/logger"
	"github.com/rovshanmuradov/botpanel/internal/ui/style"
	"go.uber.org/zap/zapcore"
)

// LogPane shows the most recent log entries.
type LogPane struct {
	tail     *logger.Tail
	viewport viewport.Model
	limit    int
	seen     uint64
	style    logPaneStyle
}

type logPaneStyle struct {
	timestamp lipgloss.Style
	name      lipgloss.Style
	fields    lipgloss.Style
	error     lipgloss.Style
	warning   lipgloss.Style
	info      lipgloss.Style
	debug     lipgloss.Style
}

// NewLogPane creates a log pane over tail showing up to limit entries.
func NewLogPane(tail *logger.Tail, limit int) *LogPane {
	palette := style.DefaultPalette()
	if limit <= 0 {
		limit = 50
	}

	lp := &LogPane{
		tail:     tail,
		limit:    limit,
		viewport: viewport.New(80, 6),
		style: logPaneStyle{
			timestamp: lipgloss.NewStyle().Foreground(palette.TextMuted),
			name:      lipgloss.NewStyle().Foreground(palette.TextSecondary),
			fields:    lipgloss.NewStyle().Foreground(palette.TextMuted),
			error:     lipgloss.NewStyle().Foreground(palette.Error).Bold(true),
			warning:   lipgloss.NewStyle().Foreground(palette.Warning).Bold(true),
			info:      lipgloss.NewStyle().Foreground(palette.Info),
			debug:     lipgloss.NewStyle().Foreground(palette.TextMuted),
		},
	}
	lp.Refresh()
	return lp
}

// SetSize sets the viewport dimensions
func (lp *LogPane) SetSize(width, height int) {
	if height < 2 {
		height = 2
	}
	lp.viewport.Width = width
	lp.viewport.Height = height
}

// Refresh reloads the viewport when new entries arrived since the last call.
func (lp *LogPane) Refresh() {
	if lp.tail == nil {
		lp.viewport.SetContent("no log tail")
		return
	}
	total := lp.tail.Total()
	if total == lp.seen && total != 0 {
		return
	}
	lp.seen = total

	entries := lp.tail.Recent(lp.limit)
	if len(entries) == 0 {
		lp.viewport.SetContent("no log entries yet")
		return
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, lp.format(e))
	}
	lp.viewport.SetContent(strings.Join(lines, "\n"))
	lp.viewport.GotoBottom()
}

// ScrollUp scrolls the log viewer up
func (lp *LogPane) ScrollUp() {
	lp.viewport.LineUp(1)
}

// ScrollDown scrolls the log viewer down
func (lp *LogPane) ScrollDown() {
	lp.viewport.LineDown(1)
}

// View renders the visible part of the log
func (lp *LogPane) View() string {
	return lp.viewport.View()
}

func (lp *LogPane) format(e logger.Entry) string {
	var levelStyle lipgloss.Style
	switch {
	case e.Level >= zapcore.ErrorLevel:
		levelStyle = lp.style.error
	case e.Level == zapcore.WarnLevel:
		levelStyle = lp.style.warning
	case e.Level == zapcore.InfoLevel:
		levelStyle = lp.style.info
	default:
		levelStyle = lp.style.debug
	}

	parts := []string{
		lp.style.timestamp.Render(e.Time.Format("15:04:05")),
		levelStyle.Render(strings.ToUpper(e.Level.String())),
	}
	if e.Logger != "" {
		parts = append(parts, lp.style.name.Render(e.Logger))
	}
	parts = append(parts, e.Message)
	if len(e.Fields) > 0 {
		parts = append(parts, lp.style.fields.Render(formatFields(e.Fields)))
	}
	return strings.Join(parts, " ")
}

func formatFields(fields map[string]interface{}) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return strings.Join(pairs, " ")
}
