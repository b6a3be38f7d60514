package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// RunModel renders the combined analysis pipeline: stage name, progress bar,
// engine status text, sample counter and the active search window. Pressing
// q or ctrl+c requests cooperative cancellation through OnCancel; the model
// stays up until the engine drains and sends DoneMsg.
type RunModel struct {
	// OnCancel requests cancellation of the running pipeline.
	OnCancel func()

	version string
	stage   string
	status  string
	samples int
	search  SearchMsg

	fraction float64
	prog     progress.Model

	width      int
	cancelling bool
	done       bool
	outcome    string
	err        error
}

// NewRunModel creates a TUI model for one pipeline run.
func NewRunModel(version string, onCancel func()) RunModel {
	return RunModel{
		OnCancel: onCancel,
		version:  version,
		prog:     progress.New(progress.WithDefaultGradient()),
	}
}

// Init implements tea.Model
func (m RunModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if !m.cancelling && m.OnCancel != nil {
				m.OnCancel()
			}
			m.cancelling = true
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.prog.Width = msg.Width - 8

	case StageStartedMsg:
		m.stage = msg.Name
		m.fraction = 0
		m.status = ""

	case ProgressMsg:
		m.fraction = msg.Fraction
		m.status = msg.Status

	case SampleMsg:
		m.samples++

	case SearchMsg:
		m.search = msg

	case DoneMsg:
		m.done = true
		m.outcome = msg.Outcome
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model
func (m RunModel) View() string {
	if m.done {
		if m.err != nil {
			return ErrorStyle.Render(fmt.Sprintf("❌ %v", m.err)) + "\n"
		}
		return SuccessStyle.Render(fmt.Sprintf("✅ Run %s", m.outcome)) + "\n"
	}

	header := HeaderStyle.Render(fmt.Sprintf("sharpctl %s", m.version))

	stage := m.stage
	if stage == "" {
		stage = "Starting..."
	}
	if m.cancelling {
		stage += " (cancelling, finishing in-flight work)"
	}

	sections := []string{
		header,
		ProcessingStyle.Render(stage),
		fmt.Sprintf("%s %s", m.prog.ViewAs(m.fraction), m.status),
		InfoStyle.Render(fmt.Sprintf("Samples collected: %d", m.samples)),
	}

	if m.search != (SearchMsg{}) {
		sections = append(sections, InfoStyle.Render(fmt.Sprintf(
			"Searching [%.2fs – %.2fs] at %.2fs, best %.2fs (%.2f)",
			m.search.WindowStart, m.search.WindowEnd, m.search.Current,
			m.search.BestTime, m.search.BestSharpness)))
	}

	sections = append(sections, "Controls: [q] Cancel")

	return strings.Join(sections, "\n\n") + "\n"
}
