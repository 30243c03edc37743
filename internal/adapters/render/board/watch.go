package board

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bnema/roundctl/internal/application"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RoundSource advances the round sequence for the live board.
type RoundSource interface {
	CatchUp(ctx context.Context) (application.Tick, error)
	Resume(ctx context.Context) (application.Tick, error)
}

type WatchOptions struct {
	Interval time.Duration
	Render   RenderOptions
	Input    io.Reader
	Output   io.Writer
	// AltScreen draws the board on the alternate screen buffer.
	AltScreen bool
}

type refreshMsg time.Time

type syncedMsg struct {
	tick   application.Tick
	err    error
	resume bool
}

type keyMap struct {
	Quit    key.Binding
	Suspend key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		Suspend: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "suspend"),
		),
	}
}

type WatchModel struct {
	ctx      context.Context
	source   RoundSource
	interval time.Duration
	opts     RenderOptions
	styles   styles
	keys     keyMap
	spinner  spinner.Model
	board    Board
	synced   bool
	resumes  int
	lastErr  error
	quitting bool
}

func NewWatchModel(ctx context.Context, source RoundSource, interval time.Duration, opts RenderOptions) WatchModel {
	if interval <= 0 {
		interval = application.DefaultDriverInterval
	}

	return WatchModel{
		ctx:      ctx,
		source:   source,
		interval: interval,
		opts:     opts,
		styles:   newStyles(),
		keys:     defaultKeyMap(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
	}
}

func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.sync(false), m.scheduleRefresh())
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Suspend) {
			return m, tea.Suspend
		}
		return m, nil
	case tea.FocusMsg, tea.ResumeMsg:
		return m, m.sync(true)
	case refreshMsg:
		return m, tea.Batch(m.sync(false), m.scheduleRefresh())
	case syncedMsg:
		m.lastErr = msg.err
		if msg.tick.Active.ID != "" {
			m.board = FromTick(msg.tick)
			m.synced = true
		}
		if msg.resume {
			m.resumes++
		}
		return m, nil
	case spinner.TickMsg:
		if m.synced {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.synced {
		return fmt.Sprintf("%s Synchronizing rounds...", m.spinner.View())
	}

	parts := []string{renderView(m.board, m.opts, m.styles)}
	if m.lastErr != nil {
		parts = append(parts, m.styles.warning.Render(fmt.Sprintf("warning: %v", m.lastErr)))
	}
	parts = append(parts, m.styles.section.Render(m.styles.help.Render(m.helpLine())))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m WatchModel) helpLine() string {
	quit := m.keys.Quit.Help()
	suspend := m.keys.Suspend.Help()
	return fmt.Sprintf("%s %s • %s %s", quit.Key, quit.Desc, suspend.Key, suspend.Desc)
}

func (m WatchModel) Board() Board {
	return m.board
}

func (m WatchModel) sync(resume bool) tea.Cmd {
	ctx := m.ctx
	source := m.source

	return func() tea.Msg {
		catchUp := source.CatchUp
		if resume {
			catchUp = source.Resume
		}
		tick, err := catchUp(ctx)
		return syncedMsg{tick: tick, err: err, resume: resume}
	}
}

func (m WatchModel) scheduleRefresh() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// RunWatch drives the live board until the user quits or ctx is cancelled.
// Regaining terminal focus or returning from a suspend is treated as a
// resume signal.
func RunWatch(ctx context.Context, source RoundSource, opts WatchOptions) error {
	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithReportFocus(),
	}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	p := tea.NewProgram(NewWatchModel(ctx, source, opts.Interval, opts.Render), programOpts...)
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run watch board: %w", err)
	}

	return nil
}
