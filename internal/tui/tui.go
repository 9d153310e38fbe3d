// ABOUTME: Live solve-progress screen: generation count, best fitness, stagnation
// ABOUTME: The solver's progress callback feeds a buffered channel so a slow terminal never blocks it

// Package tui renders a bubbletea progress screen for a running solve,
// in place of main.cpp's silent console loop.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"jigsaw-ga/internal/gaconfig"
	"jigsaw-ga/internal/puzzle"
)

// generationMsg carries one GA progress update into the bubbletea loop.
type generationMsg puzzle.GenerationUpdate

// doneMsg signals the solve goroutine has returned.
type doneMsg struct {
	perm []int
	err  error
}

// Model is the live solve-progress screen.
type Model struct {
	updates chan puzzle.GenerationUpdate
	result  chan doneMsg

	totalGenerations int
	bar              progress.Model
	live             *gaconfig.SharedConfig

	generation int
	stagnation int
	eliteSize  int
	start      time.Time

	finished bool
	Result   []int
	Err      error

	// BestFitness mirrors the last reported generation's best fitness,
	// readable after the program exits.
	BestFitness float64
}

// New returns a Model and the progress callback to pass as
// puzzle.Options.Progress. Updates are funnelled through a small
// buffered channel so a slow terminal redraw never stalls the solver;
// a full buffer simply drops the update, and the next one catches up.
//
// live, if non-nil, is shared with the running puzzle.Solve call via
// puzzle.Options.Live: the "+"/"-" keys call live.Update to retune the
// elite size mid-solve.
func New(totalGenerations int, live *gaconfig.SharedConfig) (*Model, func(puzzle.GenerationUpdate)) {
	eliteSize := 0
	if live != nil {
		eliteSize = live.Get().EliteSize
	}

	m := &Model{
		updates:          make(chan puzzle.GenerationUpdate, 8),
		result:           make(chan doneMsg, 1),
		totalGenerations: totalGenerations,
		bar:              progress.New(progress.WithDefaultGradient()),
		live:             live,
		eliteSize:        eliteSize,
		start:            time.Now(),
	}

	report := func(u puzzle.GenerationUpdate) {
		select {
		case m.updates <- u:
		default:
		}
	}

	return m, report
}

// Finish delivers the final permutation, or an error, once the solve
// goroutine returns. Call exactly once.
func (m *Model) Finish(perm []int, err error) {
	m.result <- doneMsg{perm: perm, err: err}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitForGeneration(m.updates), waitForDone(m.result))
}

func waitForGeneration(ch <-chan puzzle.GenerationUpdate) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return generationMsg(u)
	}
}

func waitForDone(ch <-chan doneMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// retuneElite nudges the live elite size by delta, clamped to
// [0, PopulationSize], and pushes it through m.live so the running
// solve picks it up at the start of its next generation.
func (m *Model) retuneElite(delta int) {
	if m.live == nil {
		return
	}
	m.live.Update(func(cfg gaconfig.GAConfig) gaconfig.GAConfig {
		next := cfg.EliteSize + delta
		if next < 0 {
			next = 0
		}
		if next > cfg.PopulationSize {
			next = cfg.PopulationSize
		}
		cfg.EliteSize = next
		m.eliteSize = next
		return cfg
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "+", "=":
			m.retuneElite(1)
		case "-":
			m.retuneElite(-1)
		}

	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 4
		if m.bar.Width < 10 {
			m.bar.Width = 10
		}

	case generationMsg:
		m.generation = msg.Generation
		m.BestFitness = msg.BestFitness
		m.stagnation = msg.Stagnation
		m.eliteSize = msg.EliteSize
		return m, waitForGeneration(m.updates)

	case doneMsg:
		m.finished = true
		m.Result = msg.perm
		m.Err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) View() string {
	if m.finished {
		if m.Err != nil {
			return errorStyle.Render(fmt.Sprintf("solve failed: %v\n", m.Err))
		}
		return doneStyle.Render(fmt.Sprintf(
			"solved in %s, best fitness %.4f\n",
			time.Since(m.start).Round(time.Millisecond), m.BestFitness,
		))
	}

	ratio := 0.0
	if m.totalGenerations > 0 {
		ratio = float64(m.generation) / float64(m.totalGenerations)
	}

	help := "q to quit"
	if m.live != nil {
		help = "q to quit   +/- to retune elite size"
	}

	return fmt.Sprintf(
		"%s\n\n%s\n\ngeneration %d/%d   best fitness %.4f   stagnation %d   elite %d\n\n%s\n",
		titleStyle.Render("jigsaw-ga"),
		m.bar.ViewAs(ratio),
		m.generation, m.totalGenerations, m.BestFitness, m.stagnation, m.eliteSize,
		helpStyle.Render(help),
	)
}
