// Package tui is an interactive terminal front end for the analyzer.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tsawler/litsense"
)

// AnalyzerPort is the TUI-facing subset of the analyzer.
type AnalyzerPort interface {
	AnalyzeComplete(ctx context.Context, text string, textType litsense.TextType) (*litsense.AnalysisResult, error)
}

// analysisMsg carries the outcome of a background analysis.
type analysisMsg struct {
	result *litsense.AnalysisResult
	err    error
	took   time.Duration
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	analyzer AnalyzerPort
	input    textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	typeIdx  int
	result   *litsense.AnalysisResult
	status   string
	busy     bool
	ready    bool
}

// New creates a new TUI model instance.
func New(analyzer AnalyzerPort) Model {
	ta := textarea.New()
	ta.Placeholder = "Paste a poem, story or essay. Ctrl+S analyzes, Tab changes the text type."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		analyzer: analyzer,
		input:    ta,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		typeIdx:  indexOf(litsense.General),
		status:   "Ready.",
	}
}

func indexOf(textType litsense.TextType) int {
	for i, tt := range litsense.TextTypes {
		if tt == textType {
			return i
		}
	}
	return 0
}

// TextType returns the selected text type.
func (m Model) TextType() litsense.TextType {
	return litsense.TextTypes[m.typeIdx]
}

// Init initializes the model (textarea cursor blink).
func (m Model) Init() tea.Cmd { return textarea.Blink }

// Update handles key, window and analysis events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		inputHeight := 6
		reserved := 3 + inputHeight + ih + rh // header, type line, status
		m.input.SetWidth(max(20, msg.Width-4))
		m.input.SetHeight(inputHeight)
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved)
		m.viewport.SetContent(m.renderResult())
		return m, nil

	case analysisMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.result = msg.result
		m.status = fmt.Sprintf("Analyzed %d words as %s in %s.",
			msg.result.Features.WordCount, msg.result.Metadata.TextType, msg.took.Round(time.Millisecond))
		m.viewport.SetContent(m.renderResult())
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.typeIdx = (m.typeIdx + 1) % len(litsense.TextTypes)
			return m, nil
		case tea.KeyCtrlS:
			return m.startAnalysis()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) startAnalysis() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		m.status = "Enter some text first."
		return m, nil
	}

	m.busy = true
	m.status = fmt.Sprintf("Analyzing as %s...", m.TextType())
	return m, tea.Batch(m.spinner.Tick, analyze(m.analyzer, text, m.TextType()))
}

func analyze(analyzer AnalyzerPort, text string, textType litsense.TextType) tea.Cmd {
	return func() tea.Msg {
		started := time.Now()
		result, err := analyzer.AnalyzeComplete(context.Background(), text, textType)
		return analysisMsg{result: result, err: err, took: time.Since(started)}
	}
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Literary Sentiment Analysis")
	textType := mutedStyle.Render("Text type: ") + typeStyle.Render(string(m.TextType())) +
		mutedStyle.Render("  (Tab to change, Ctrl+S to analyze, PgUp/PgDn to scroll, Esc to quit)")
	input := inputBoxStyle.Render(m.input.View())
	results := resultBoxStyle.Render(m.viewport.View())

	status := statusStyle.Render(m.status)
	if m.busy {
		status = m.spinner.View() + " " + status
	}
	return header + "\n" + textType + "\n" + input + "\n" + results + "\n" + status
}

func (m Model) renderResult() string {
	if m.result == nil {
		return "No analysis yet."
	}
	return litsense.GenerateSummary(m.result)
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	typeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)
