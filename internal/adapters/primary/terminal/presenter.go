// Package terminal paints release views for a TTY.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"release-viewer/internal/adapters/primary/http/dto"
	"release-viewer/internal/core/domain"
)

var (
	accent  = lipgloss.Color("#2196F3")
	muted   = lipgloss.Color("#8b949e")
	warning = lipgloss.Color("#FFC107")
	border  = lipgloss.Color("#2a3850")
)

type styles struct {
	card    lipgloss.Style
	title   lipgloss.Style
	meta    lipgloss.Style
	asset   lipgloss.Style
	label   lipgloss.Style
	hint    lipgloss.Style
	summary lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			MarginBottom(1),
		title:   r.NewStyle().Bold(true).Foreground(accent),
		meta:    r.NewStyle().Foreground(muted),
		asset:   r.NewStyle(),
		label:   r.NewStyle().Foreground(accent).Faint(true),
		hint:    r.NewStyle().Foreground(warning).Bold(true),
		summary: r.NewStyle().Foreground(muted).Italic(true),
	}
}

// Presenter writes views to out. Colors are dropped automatically when out
// is not a terminal.
type Presenter struct {
	out    io.Writer
	styles styles
}

func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

func (p *Presenter) Render(v *domain.View) error {
	var b strings.Builder

	if v.RateLimit != nil {
		b.WriteString(p.styles.hint.Render(dto.RateLimitMessage(v.RateLimit)))
		b.WriteString("\n\n")
	}

	if v.Empty {
		b.WriteString(p.styles.meta.Render("No releases match the current filter."))
		b.WriteString("\n")
	}

	for _, card := range v.Cards {
		b.WriteString(p.card(card))
		b.WriteString("\n")
	}

	b.WriteString(p.styles.summary.Render(summary(v)))
	b.WriteString("\n")

	_, err := io.WriteString(p.out, b.String())
	return err
}

func (p *Presenter) card(c domain.Card) string {
	lines := []string{
		p.styles.title.Render(c.Title),
		p.styles.meta.Render(fmt.Sprintf("Tag: %s · Published: %s · %s", c.Tag, c.Published, c.URL)),
	}

	for _, a := range c.Assets {
		lines = append(lines, p.styles.asset.Render(fmt.Sprintf("%s · %s  %s", a.Kind, a.Name, a.URL)))
	}

	if len(c.Labels) > 0 {
		tags := make([]string, 0, len(c.Labels))
		for _, l := range c.Labels {
			tags = append(tags, p.styles.label.Render("["+l+"]"))
		}
		lines = append(lines, strings.Join(tags, " "))
	}

	return p.styles.card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func summary(v *domain.View) string {
	s := fmt.Sprintf("%d of %d fetched releases shown", len(v.Cards), v.Fetched)
	if v.Query.FilterExt != "" {
		s += ", filter " + v.Query.FilterExt
	}
	if v.Query.Search != "" {
		s += fmt.Sprintf(", query %q", v.Query.Search)
	}
	return s
}
