package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/minsu-kang/reclaim/internal/analyzer"
	"github.com/minsu-kang/reclaim/internal/types"
)

type progressMsg types.AnalysisProgress

type scanDoneMsg struct {
	result *types.AnalysisResult
	err    error
}

// scanModel is a minimal bubbletea model showing a spinner and progress
// bar while the aggregator works on a background goroutine.
type scanModel struct {
	spinner spinner.Model
	bar     progress.Model
	updates <-chan tea.Msg
	cancel  context.CancelFunc

	current   string
	completed int
	total     int

	result *types.AnalysisResult
	err    error
}

func newScanModel(updates <-chan tea.Msg, cancel context.CancelFunc) scanModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)
	return scanModel{
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient()),
		updates: updates,
		cancel:  cancel,
		current: "Starting...",
	}
}

func (m scanModel) listen() tea.Cmd {
	return func() tea.Msg {
		return <-m.updates
	}
}

func (m scanModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listen())
}

func (m scanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			// Cancellation propagates through the shared context; the
			// aggregator reports it via scanDoneMsg.
			m.cancel()
			return m, m.listen()
		}
		return m, nil

	case progressMsg:
		m.current = msg.CurrentAnalyzer
		m.completed = msg.Completed
		m.total = msg.Total
		return m, m.listen()

	case scanDoneMsg:
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m scanModel) View() string {
	if m.result != nil || m.err != nil {
		return ""
	}

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.completed) / float64(m.total)
	}

	return fmt.Sprintf("\n  %s Analyzing: %s (%d/%d)\n\n  %s\n\n  press q to cancel\n",
		m.spinner.View(), m.current, m.completed, m.total, m.bar.ViewAs(percent))
}

// RunScan executes the aggregator with a live progress display. The scan
// itself runs on a goroutine; the model only consumes progress messages.
func RunScan(ctx context.Context, cancel context.CancelFunc, agg *analyzer.Aggregator) (*types.AnalysisResult, error) {
	updates := make(chan tea.Msg, 16)

	go func() {
		result, err := agg.AnalyzeAll(ctx, func(p types.AnalysisProgress) {
			updates <- progressMsg(p)
		})
		updates <- scanDoneMsg{result: result, err: err}
	}()

	final, err := tea.NewProgram(newScanModel(updates, cancel)).Run()
	if err != nil {
		return nil, err
	}

	m := final.(scanModel)
	return m.result, m.err
}

// RunScanPlain is the non-TTY fallback: one line per analyzer, written
// to progressOut. Callers keep stdout for the result itself so piped
// output stays machine-readable.
func RunScanPlain(ctx context.Context, agg *analyzer.Aggregator, progressOut io.Writer) (*types.AnalysisResult, error) {
	return agg.AnalyzeAll(ctx, func(p types.AnalysisProgress) {
		if p.CurrentAnalyzer == "Complete" {
			fmt.Fprintf(progressOut, "done (%d analyzers)\n", p.Total)
			return
		}
		fmt.Fprintf(progressOut, "[%d/%d] %s\n", p.Completed+1, p.Total, p.CurrentAnalyzer)
	})
}
