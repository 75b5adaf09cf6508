package screen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/botpanel/internal/api"
	"github.com/rovshanmuradov/botpanel/internal/command"
	"github.com/rovshanmuradov/botpanel/internal/logger"
	"github.com/rovshanmuradov/botpanel/internal/poller"
	"github.com/rovshanmuradov/botpanel/internal/status"
	"github.com/rovshanmuradov/botpanel/internal/ui"
	"github.com/rovshanmuradov/botpanel/internal/ui/component"
	"github.com/rovshanmuradov/botpanel/internal/ui/style"
	"go.uber.org/zap"
)

const clockInterval = time.Second

// Runner executes operator commands by name. *command.Table satisfies it.
type Runner interface {
	Run(ctx context.Context, action command.Action) error
}

// Panes are the view renderers the poller writes into.
type Panes struct {
	Status    *component.StatusPane
	Portfolio *component.PortfolioPane
	Equity    *component.EquityChart
	Trades    *component.TradeLedger
}

// NewPanes creates the renderers. The status pane shares box with the
// transport's error reporter.
func NewPanes(box *status.Box) Panes {
	return Panes{
		Status:    component.NewStatusPane(box),
		Portfolio: component.NewPortfolioPane(),
		Equity:    component.NewEquityChart(nil),
		Trades:    component.NewTradeLedger(),
	}
}

// Views adapts the panes to the poller.
func (p Panes) Views() poller.Views {
	return poller.Views{
		Status:    p.Status,
		Portfolio: p.Portfolio,
		Equity:    p.Equity,
		Trades:    p.Trades,
	}
}

// DashboardOptions configures a dashboard.
type DashboardOptions struct {
	Endpoint string
	Defaults command.StartParams
	Tail     *logger.Tail
	Logger   *zap.Logger
}

type focusTarget int

const (
	focusTrades focusTarget = iota
	focusLogs
)

// Dashboard is the single screen of the panel: status, portfolio, equity
// curve, trade ledger and the log tail, with a start form on demand.
type Dashboard struct {
	ctx    context.Context
	runner Runner
	panes  Panes
	keyMap ui.KeyMap
	logger *zap.Logger
	now    func() time.Time

	header  *component.StatusHeader
	form    *component.StartForm
	logs    *component.LogPane
	helpBar *component.HelpBar

	width    int
	height   int
	showForm bool
	showLogs bool
	focus    focusTarget
	inFlight map[command.Action]int
	result   string
	failed   bool

	// start parameters handed from the event loop to the command goroutine
	paramsMu sync.Mutex
	params   command.StartParams

	errorStyle   lipgloss.Style
	successStyle lipgloss.Style
	mutedStyle   lipgloss.Style
}

// NewDashboard creates the dashboard over panes. Commands run with ctx.
func NewDashboard(ctx context.Context, panes Panes, opts DashboardOptions) *Dashboard {
	palette := style.DefaultPalette()
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dashboard{
		ctx:      ctx,
		panes:    panes,
		keyMap:   ui.DefaultKeyMap(),
		logger:   log.Named("ui"),
		now:      time.Now,
		header:   component.NewStatusHeader(opts.Endpoint),
		form:     component.NewStartForm(opts.Defaults),
		logs:     component.NewLogPane(opts.Tail, 100),
		helpBar:  component.NewHelpBar(),
		showLogs: opts.Tail != nil,
		inFlight: make(map[command.Action]int),
		params:   opts.Defaults,

		errorStyle:   lipgloss.NewStyle().Foreground(palette.Error).Bold(true),
		successStyle: lipgloss.NewStyle().Foreground(palette.Success),
		mutedStyle:   lipgloss.NewStyle().Foreground(palette.TextMuted),
	}
	d.helpBar.SetKeyBindings(d.keyMap.ShortHelp())
	return d
}

// SetRunner sets the command table. It is separate from construction
// because the start command reads StartParams from the dashboard.
func (d *Dashboard) SetRunner(r Runner) {
	d.runner = r
}

// StartParams returns the parameters of the last submitted start form.
func (d *Dashboard) StartParams() command.StartParams {
	d.paramsMu.Lock()
	defer d.paramsMu.Unlock()
	return d.params
}

func (d *Dashboard) setStartParams(p command.StartParams) {
	d.paramsMu.Lock()
	d.params = p
	d.paramsMu.Unlock()
}

// Init starts the clock.
func (d *Dashboard) Init() tea.Cmd {
	return clockTick()
}

func clockTick() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return ui.ClockMsg(t)
	})
}

// Update handles screen updates
func (d *Dashboard) Update(msg tea.Msg) (*Dashboard, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.SetSize(msg.Width, msg.Height)

	case ui.ApplyMsg:
		if msg.Fn != nil {
			msg.Fn()
		}
		d.header.SetStatus(d.panes.Status.Last())
		if msg.Kind == poller.KindFull {
			d.header.MarkSynced(d.now())
		}
		d.logs.Refresh()

	case ui.CommandDoneMsg:
		d.finish(msg)
		d.logs.Refresh()

	case ui.ClockMsg:
		d.logs.Refresh()
		return d, clockTick()

	case tea.KeyMsg:
		if d.showForm {
			return d.updateForm(msg)
		}
		return d.updateKeys(msg)
	}

	return d, nil
}

func (d *Dashboard) updateKeys(msg tea.KeyMsg) (*Dashboard, tea.Cmd) {
	switch {
	case key.Matches(msg, d.keyMap.Quit):
		return d, tea.Quit

	case key.Matches(msg, d.keyMap.Start):
		d.showForm = true
		d.form.Reset()
		d.helpBar.SetKeyBindings(d.keyMap.FormHelp())

	case key.Matches(msg, d.keyMap.Pause):
		return d, d.run(command.ActionPause)

	case key.Matches(msg, d.keyMap.Resume):
		return d, d.run(command.ActionResume)

	case key.Matches(msg, d.keyMap.Stop):
		return d, d.run(command.ActionStop)

	case key.Matches(msg, d.keyMap.Refresh):
		return d, d.run(command.ActionRefresh)

	case key.Matches(msg, d.keyMap.Tab):
		if d.focus == focusTrades && d.showLogs {
			d.focus = focusLogs
		} else {
			d.focus = focusTrades
		}

	case key.Matches(msg, d.keyMap.Toggle):
		d.showLogs = !d.showLogs
		if !d.showLogs {
			d.focus = focusTrades
		}

	case key.Matches(msg, d.keyMap.Up):
		if d.focus == focusLogs {
			d.logs.ScrollUp()
		} else {
			d.panes.Trades.Table().ScrollUp()
		}

	case key.Matches(msg, d.keyMap.Down):
		if d.focus == focusLogs {
			d.logs.ScrollDown()
		} else {
			d.panes.Trades.Table().ScrollDown()
		}
	}
	return d, nil
}

func (d *Dashboard) updateForm(msg tea.KeyMsg) (*Dashboard, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return d, tea.Quit

	case key.Matches(msg, d.keyMap.Back):
		d.closeForm()
		return d, nil

	case key.Matches(msg, d.keyMap.Enter):
		d.setStartParams(d.form.Params())
		d.closeForm()
		return d, d.run(command.ActionStart)
	}

	var cmd tea.Cmd
	d.form, cmd = d.form.Update(msg)
	return d, cmd
}

func (d *Dashboard) closeForm() {
	d.showForm = false
	d.helpBar.SetKeyBindings(d.keyMap.ShortHelp())
}

// run executes action off the event loop and reports back with a
// CommandDoneMsg.
func (d *Dashboard) run(action command.Action) tea.Cmd {
	if d.runner == nil {
		d.result = fmt.Sprintf("%s unavailable", action)
		d.failed = true
		return nil
	}

	d.inFlight[action]++
	ctx, runner := d.ctx, d.runner
	return func() tea.Msg {
		started := time.Now()
		err := runner.Run(ctx, action)
		return ui.CommandDoneMsg{Action: action, Err: err, Duration: time.Since(started)}
	}
}

func (d *Dashboard) finish(msg ui.CommandDoneMsg) {
	if d.inFlight[msg.Action] > 1 {
		d.inFlight[msg.Action]--
	} else {
		delete(d.inFlight, msg.Action)
	}

	if msg.Err != nil {
		d.failed = true
		d.result = fmt.Sprintf("%s failed: %s", msg.Action, commandError(msg.Err))
		return
	}
	d.failed = false
	d.result = fmt.Sprintf("%s ok (%s)", msg.Action, msg.Duration.Round(time.Millisecond))
}

// commandError prefers the resolved API message over the wrapped chain.
func commandError(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// SetSize sets the screen dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.header.SetWidth(width)
	d.helpBar.SetWidth(width)

	ledgerRows := height / 4
	if ledgerRows < 3 {
		ledgerRows = 3
	}
	d.panes.Trades.Table().SetHeight(ledgerRows)
	d.panes.Equity.SetSize(chartWidth(width), chartHeight(height))
	d.logs.SetSize(width-4, height/6)
}

// chartWidth leaves room for the panel border and padding.
func chartWidth(width int) int {
	return max(width-6, 10)
}

func chartHeight(height int) int {
	return max(height/8, 3)
}

// View renders the dashboard
func (d *Dashboard) View() string {
	if d.width == 0 || d.height == 0 {
		return "Loading..."
	}

	if d.showForm {
		form := style.Panel(true).Render(d.form.View())
		return lipgloss.JoinVertical(lipgloss.Left,
			d.header.View(),
			lipgloss.Place(d.width, d.height/2, lipgloss.Center, lipgloss.Center, form),
			d.helpBar.View(),
		)
	}

	half := d.width/2 - 2
	if half < 20 {
		half = 20
	}
	dumpLines := d.height / 5
	if dumpLines < 4 {
		dumpLines = 4
	}

	statusBox := style.Panel(false).Width(half).Render(
		style.Title().Render(d.panes.Status.Title()) + "\n" + clampLines(d.panes.Status.Text(), dumpLines))
	portfolioBox := style.Panel(false).Width(half).Render(
		style.Title().Render(d.panes.Portfolio.Title()) + "\n" + clampLines(d.panes.Portfolio.Text(), dumpLines))

	equityBox := style.Panel(false).Render(
		style.Title().Render("Equity") + "\n" + d.panes.Equity.View())
	tradesBox := style.Panel(d.focus == focusTrades).Render(
		style.Title().Render("Trades") + "\n" + d.panes.Trades.View())

	sections := []string{
		d.header.View(),
		lipgloss.JoinHorizontal(lipgloss.Top, statusBox, portfolioBox),
		equityBox,
		tradesBox,
	}
	if d.showLogs {
		sections = append(sections, style.Panel(d.focus == focusLogs).Render(
			style.Title().Render("Logs")+"\n"+d.logs.View()))
	}
	sections = append(sections, d.renderResult(), d.helpBar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (d *Dashboard) renderResult() string {
	var pending []string
	for _, a := range []command.Action{
		command.ActionStart, command.ActionPause, command.ActionResume,
		command.ActionStop, command.ActionRefresh,
	} {
		if d.inFlight[a] > 0 {
			pending = append(pending, string(a))
		}
	}

	line := d.mutedStyle.Render("ready")
	switch {
	case d.result != "" && d.failed:
		line = d.errorStyle.Render(d.result)
	case d.result != "":
		line = d.successStyle.Render(d.result)
	}
	if len(pending) > 0 {
		line += d.mutedStyle.Render("  running: " + strings.Join(pending, ", "))
	}
	return line
}

// clampLines keeps the first n lines of s.
func clampLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + "\n…"
}
