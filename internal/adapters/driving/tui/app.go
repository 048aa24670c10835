package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
	"github.com/plainterms/plainterms-cli/internal/core/ports/driving"
)

// view identifies which screen is active.
type view int

const (
	viewBundles view = iota
	viewAsk
	viewAnswer
)

// bundlesMsg carries the result of loading the bundle list.
type bundlesMsg struct {
	bundles []domain.Bundle
	err     error
}

// answerMsg carries the result of one ask round.
type answerMsg struct {
	result *driving.AskResult
	err    error
}

// App is the TUI application following the Elm architecture.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *Styles

	currentView view

	bundles []domain.Bundle
	cursor  int
	bundle  *domain.Bundle

	input   textinput.Model
	loading bool
	answer  *driving.AskResult

	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	input := textinput.New()
	input.Placeholder = "Ask a question about this document..."
	input.CharLimit = 500

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      DefaultStyles(),
		currentView: viewBundles,
		input:       input,
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) {
	if ctx != nil {
		a.ctx = ctx
	}
}

// Init loads the bundle list.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.loadBundles())
}

func (a *App) loadBundles() tea.Cmd {
	return func() tea.Msg {
		bundles, err := a.ports.Bundle.List(a.ctx)
		return bundlesMsg{bundles: bundles, err: err}
	}
}

func (a *App) ask(question string) tea.Cmd {
	bundleID := a.bundle.ID
	return func() tea.Msg {
		result, err := a.ports.Ask.Ask(a.ctx, bundleID, question, driving.AskOptions{})
		return answerMsg{result: result, err: err}
	}
}

// Update handles messages and key events.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case bundlesMsg:
		a.bundles = msg.bundles
		a.err = msg.err
		if a.cursor >= len(a.bundles) {
			a.cursor = 0
		}
		return a, nil

	case answerMsg:
		a.loading = false
		a.answer = msg.result
		a.err = msg.err
		if msg.err == nil {
			a.currentView = viewAnswer
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.currentView == viewAsk {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	switch a.currentView {
	case viewBundles:
		return a.handleBundlesKey(msg)
	case viewAsk:
		return a.handleAskKey(msg)
	case viewAnswer:
		return a.handleAnswerKey(msg)
	}
	return a, nil
}

func (a *App) handleBundlesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.bundles)-1 {
			a.cursor++
		}
	case "enter":
		if len(a.bundles) > 0 {
			a.bundle = &a.bundles[a.cursor]
			a.currentView = viewAsk
			a.err = nil
			a.input.SetValue("")
			return a, a.input.Focus()
		}
	}
	return a, nil
}

func (a *App) handleAskKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.currentView = viewBundles
		a.input.Blur()
		a.err = nil
		return a, nil
	case tea.KeyEnter:
		question := strings.TrimSpace(a.input.Value())
		if question == "" || a.loading {
			return a, nil
		}
		if a.ports.Ask == nil {
			a.err = fmt.Errorf("no LLM configured; run 'plainterms config' first")
			return a, nil
		}
		a.loading = true
		a.err = nil
		return a, a.ask(question)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleAnswerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		a.currentView = viewAsk
		a.answer = nil
		a.input.SetValue("")
		return a, a.input.Focus()
	case "q":
		return a, tea.Quit
	}
	return a, nil
}

// View renders the active screen.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	switch a.currentView {
	case viewBundles:
		return a.viewBundleList()
	case viewAsk:
		return a.viewAskInput()
	case viewAnswer:
		return a.viewAnswerScreen()
	}
	return ""
}

func (a *App) viewBundleList() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Plainterms"))
	b.WriteString("\n")

	if a.err != nil {
		b.WriteString(a.styles.ErrText.Render("Error: " + a.err.Error()))
		b.WriteString("\n")
	}

	if len(a.bundles) == 0 {
		b.WriteString(a.styles.Dim.Render("No bundles. Run 'plainterms ingest' to add one."))
		b.WriteString("\n")
	}
	for i := range a.bundles {
		line := fmt.Sprintf("%s  %d segments", a.bundles[i].ID, len(a.bundles[i].Segments))
		if i == a.cursor {
			b.WriteString(a.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(a.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Help.Render("↑/k ↓/j navigate · enter select · q quit"))
	return b.String()
}

func (a *App) viewAskInput() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Ask " + a.bundle.ID))
	b.WriteString("\n")
	b.WriteString(a.input.View())
	b.WriteString("\n")

	if a.loading {
		b.WriteString(a.styles.Dim.Render("Thinking..."))
		b.WriteString("\n")
	}
	if a.err != nil {
		b.WriteString(a.styles.ErrText.Render("Error: " + a.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Help.Render("enter ask · esc back"))
	return b.String()
}

func (a *App) viewAnswerScreen() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Answer"))
	b.WriteString("\n")
	b.WriteString(a.answer.Answer)
	b.WriteString("\n\n")
	b.WriteString(a.renderReport(a.answer.Report))
	b.WriteString(a.styles.Help.Render("enter/esc ask again · q quit"))
	return b.String()
}

func (a *App) renderReport(report *domain.VerificationReport) string {
	if report == nil {
		return ""
	}

	var b strings.Builder
	if report.OK {
		b.WriteString(a.styles.OK.Render("GROUNDED"))
	} else {
		b.WriteString(a.styles.Fail.Render("NOT GROUNDED"))
	}
	b.WriteString(fmt.Sprintf("  %d/%d segments cited\n", report.NumCited, report.NumSegments))

	for _, id := range report.UnknownChunkIDs {
		b.WriteString(a.styles.Fail.Render("  unknown citation: "))
		b.WriteString(a.styles.Chunk.Render(id))
		b.WriteString("\n")
	}
	for _, id := range report.MissingSnippetMatches {
		b.WriteString(a.styles.Warn.Render("  citation without textual support: "))
		b.WriteString(a.styles.Chunk.Render(id))
		b.WriteString("\n")
	}
	for _, flag := range report.PotentialHallucinations {
		b.WriteString(a.styles.Warn.Render(fmt.Sprintf("  uncited %q claim\n", flag.Term)))
	}
	return b.String()
}
