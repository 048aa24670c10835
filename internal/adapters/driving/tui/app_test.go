package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
	"github.com/plainterms/plainterms-cli/internal/core/ports/driving"
)

type mockBundleService struct {
	bundles []domain.Bundle
	err     error
}

func (m *mockBundleService) Ingest(_ context.Context, _ string) (*domain.Bundle, error) {
	return nil, m.err
}

func (m *mockBundleService) Get(_ context.Context, _ string) (*domain.Bundle, error) {
	if len(m.bundles) == 0 {
		return nil, domain.ErrNotFound
	}
	return &m.bundles[0], m.err
}

func (m *mockBundleService) List(_ context.Context) ([]domain.Bundle, error) {
	return m.bundles, m.err
}

func (m *mockBundleService) Delete(_ context.Context, _ string) error {
	return m.err
}

type mockAskService struct {
	result *driving.AskResult
	err    error
}

func (m *mockAskService) Ask(_ context.Context, _, _ string, _ driving.AskOptions) (*driving.AskResult, error) {
	return m.result, m.err
}

func tuiBundles() []domain.Bundle {
	return []domain.Bundle{
		{ID: "bundle-tui000000001", Segments: []domain.Segment{{ID: "bundle-tui000000001-chunk-001", Text: "alpha"}}},
		{ID: "bundle-tui000000002", Segments: []domain.Segment{{ID: "bundle-tui000000002-chunk-001", Text: "beta"}}},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(&Ports{
		Bundle: &mockBundleService{bundles: tuiBundles()},
		Ask: &mockAskService{result: &driving.AskResult{
			Answer: "The answer.",
			Report: &domain.VerificationReport{OK: true, NumSegments: 1, NumCited: 1},
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return app
}

func TestNewApp_RequiresBundleService(t *testing.T) {
	if _, err := NewApp(&Ports{}); !errors.Is(err, ErrMissingBundleService) {
		t.Errorf("expected ErrMissingBundleService, got %v", err)
	}
}

func TestNewApp_NilPorts(t *testing.T) {
	if _, err := NewApp(nil); !errors.Is(err, ErrInvalidPorts) {
		t.Errorf("expected ErrInvalidPorts, got %v", err)
	}
}

func TestApp_LoadsBundles(t *testing.T) {
	app := newTestApp(t)

	app.Update(bundlesMsg{bundles: tuiBundles()})

	view := app.View()
	if !contains(view, "bundle-tui000000001") || !contains(view, "bundle-tui000000002") {
		t.Errorf("bundle list missing from view:\n%s", view)
	}
}

func TestApp_NavigationMovesCursor(t *testing.T) {
	app := newTestApp(t)
	app.Update(bundlesMsg{bundles: tuiBundles()})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if app.cursor != 1 {
		t.Errorf("expected cursor 1 after j, got %d", app.cursor)
	}

	// Clamp at the end of the list.
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if app.cursor != 1 {
		t.Errorf("cursor should clamp at 1, got %d", app.cursor)
	}

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	if app.cursor != 0 {
		t.Errorf("expected cursor 0 after k, got %d", app.cursor)
	}
}

func TestApp_EnterSelectsBundle(t *testing.T) {
	app := newTestApp(t)
	app.Update(bundlesMsg{bundles: tuiBundles()})

	app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if app.currentView != viewAsk {
		t.Fatalf("expected ask view, got %v", app.currentView)
	}
	if app.bundle == nil || app.bundle.ID != "bundle-tui000000001" {
		t.Errorf("unexpected selected bundle: %+v", app.bundle)
	}
}

func TestApp_AnswerMsgShowsReport(t *testing.T) {
	app := newTestApp(t)
	app.Update(bundlesMsg{bundles: tuiBundles()})
	app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	app.Update(answerMsg{result: &driving.AskResult{
		Answer: "The term is two years.",
		Report: &domain.VerificationReport{OK: true, NumSegments: 1, NumCited: 1},
	}})

	if app.currentView != viewAnswer {
		t.Fatalf("expected answer view, got %v", app.currentView)
	}
	view := app.View()
	if !contains(view, "The term is two years.") || !contains(view, "GROUNDED") {
		t.Errorf("answer view missing content:\n%s", view)
	}
}

func TestApp_AnswerErrorStaysOnAskView(t *testing.T) {
	app := newTestApp(t)
	app.Update(bundlesMsg{bundles: tuiBundles()})
	app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	app.Update(answerMsg{err: errors.New("generation failed")})

	if app.currentView != viewAsk {
		t.Errorf("expected to stay on ask view, got %v", app.currentView)
	}
	if !contains(app.View(), "generation failed") {
		t.Error("error not shown in view")
	}
}

func TestApp_EscReturnsToBundles(t *testing.T) {
	app := newTestApp(t)
	app.Update(bundlesMsg{bundles: tuiBundles()})
	app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if app.currentView != viewBundles {
		t.Errorf("expected bundles view after esc, got %v", app.currentView)
	}
}

func TestApp_CtrlCQuits(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func contains(s, sub string) bool {
	return strings.Contains(s, sub)
}
