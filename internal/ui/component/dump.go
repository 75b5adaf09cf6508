package component

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rovshanmuradov/botpanel/internal/api"
	"github.com/rovshanmuradov/botpanel/internal/status"
)

// Sorted keys keep consecutive dumps of the same payload identical.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJSON formats v with a two space indent.
func PrettyJSON(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}

// DumpPane shows a payload verbatim. Each render replaces the text.
type DumpPane struct {
	title string
	box   *status.Box
}

// NewDumpPane creates a pane writing into box. A nil box gets a private one.
func NewDumpPane(title string, box *status.Box) *DumpPane {
	if box == nil {
		box = status.NewBox()
	}
	return &DumpPane{title: title, box: box}
}

// Set replaces the pane text with the dump of v.
func (p *DumpPane) Set(v any) {
	p.box.Report(PrettyJSON(v))
}

// Text returns the current pane text.
func (p *DumpPane) Text() string {
	return p.box.Text()
}

// UpdatedAt returns when the text last changed.
func (p *DumpPane) UpdatedAt() time.Time {
	return p.box.UpdatedAt()
}

// Title returns the pane heading.
func (p *DumpPane) Title() string {
	return p.title
}

// StatusPane shows the bot status. It shares its slot with the error
// reporter, so a fresh status replaces the last error and vice versa.
type StatusPane struct {
	*DumpPane
	last api.BotStatus
}

// NewStatusPane creates the status pane over the shared status box.
func NewStatusPane(box *status.Box) *StatusPane {
	return &StatusPane{DumpPane: NewDumpPane("Status", box)}
}

// Render implements poller.StatusView.
func (p *StatusPane) Render(s api.BotStatus) {
	p.last = s
	p.Set(s)
}

// Last returns the most recently rendered status.
func (p *StatusPane) Last() api.BotStatus {
	return p.last
}

// PortfolioPane shows the portfolio snapshot.
type PortfolioPane struct {
	*DumpPane
}

// NewPortfolioPane creates the portfolio pane with its own slot.
func NewPortfolioPane() *PortfolioPane {
	return &PortfolioPane{DumpPane: NewDumpPane("Portfolio", nil)}
}

// Render implements poller.PortfolioView.
func (p *PortfolioPane) Render(pf api.Portfolio) {
	p.Set(pf)
}
