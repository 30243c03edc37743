package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/roundctl/internal/application"
	"github.com/bnema/roundctl/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// urgentBelow is the countdown threshold under which the timer is highlighted.
const urgentBelow = 5 * time.Second

// Board is everything the renderer shows for one moment of a run.
type Board struct {
	RunID     string
	Active    domain.Round
	Remaining time.Duration
	History   []domain.Round
}

func FromTick(tick application.Tick) Board {
	return Board{
		RunID:     tick.RunID,
		Active:    tick.Active,
		Remaining: tick.Remaining,
		History:   tick.History,
	}
}

type RenderOptions struct {
	// Location formats round start times; nil keeps each time's own zone.
	Location *time.Location
	// HideRunID drops the run identifier line.
	HideRunID bool
}

func renderView(b Board, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Round Board"),
	}
	if !opts.HideRunID && b.RunID != "" {
		lines = append(lines, s.header.Render(fmt.Sprintf("run: %s", b.RunID)))
	}

	lines = append(lines, s.section.Render(renderActive(b, s)))
	lines = append(lines, s.section.Render(renderHistory(b.History, opts, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderActive(b Board, s styles) string {
	timer := s.countdown
	if b.Remaining < urgentBelow {
		timer = s.urgent
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.header.Render("period "),
		s.roundID.Render(b.Active.ID.String()),
		s.header.Render("  closes in "),
		timer.Render(FormatCountdown(b.Remaining)),
	)
}

func renderHistory(history []domain.Round, opts RenderOptions, s styles) string {
	if len(history) == 0 {
		return s.empty.Render("No completed rounds yet.")
	}

	rows := []string{
		s.column.Render(fmt.Sprintf("%-19s  %-8s  %-5s  %-6s  %s", "Period", "Started", "Digit", "Size", "Color")),
	}
	for _, round := range history {
		rows = append(rows, historyRow(round, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func historyRow(round domain.Round, opts RenderOptions, s styles) string {
	started := round.StartedAt
	if opts.Location != nil {
		started = started.In(opts.Location)
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.cell.Render(fmt.Sprintf("%-19s  %-8s  ", round.ID, started.Format("15:04:05"))),
		s.outcome(round.Outcome.Color).Render(fmt.Sprintf("%-5d", round.Outcome.Digit)),
		s.cell.Render(fmt.Sprintf("  %-6s  ", round.Outcome.Category)),
		colorLabel(round.Outcome.Color, s),
	)
}

func colorLabel(color domain.Color, s styles) string {
	if !color.Dual() {
		return s.outcome(color).Render(string(color))
	}

	primary, _, _ := strings.Cut(string(color), "-")
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.outcome(color).Render(primary),
		s.cell.Render("+"),
		violet.Render("violet"),
	)
}

// FormatCountdown renders d as MM:SS, rounding partial seconds up so an open
// round never shows 00:00.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int((d + time.Second - 1) / time.Second)

	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Line is the single-line plain rendering used when no terminal UI is
// attached.
func Line(b Board) string {
	line := fmt.Sprintf("period %s closes in %s", b.Active.ID, FormatCountdown(b.Remaining))
	if len(b.History) == 0 {
		return line
	}

	last := b.History[0]
	return fmt.Sprintf("%s | last %s digit %d %s %s",
		line, last.ID, last.Outcome.Digit, last.Outcome.Category, last.Outcome.Color)
}
