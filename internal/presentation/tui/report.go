// Package tui renders pipeline run reports for terminal consumption.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/aretw0/canopy/pkg/domain"
)

// StatusLine returns a colored one-line summary of the run outcome.
func StatusLine(state *domain.State) string {
	p := termenv.ColorProfile()
	switch {
	case state.Status == domain.StatusBlocked:
		return termenv.String("✗ blocked: " + state.LastError).Foreground(p.Color("#f87171")).String()
	case state.Verdict != nil && state.Verdict.Passed:
		return termenv.String("✓ " + state.Verdict.String()).Foreground(p.Color("#4ade80")).String()
	default:
		return termenv.String("✗ " + state.Verdict.String()).Foreground(p.Color("#facc15")).String()
	}
}

// RenderReport builds a markdown report of the run and renders it with
// glamour for display. Falls back to the raw markdown if the terminal
// renderer cannot be initialized.
func RenderReport(state *domain.State) string {
	md := buildMarkdown(state)

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func buildMarkdown(state *domain.State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Run %s\n\n", state.RunID)
	fmt.Fprintf(&b, "**Request:** %s\n\n", state.Request)
	fmt.Fprintf(&b, "**Status:** %s · **Retries:** %d\n\n", state.Status, state.RetryCount)

	if state.Verdict != nil {
		fmt.Fprintf(&b, "**Validation:** %s\n\n", state.Verdict)
	}
	if state.LastError != "" {
		fmt.Fprintf(&b, "**Last error:** %s\n\n", state.LastError)
	}
	if state.GeneratedCode != "" {
		fmt.Fprintf(&b, "## Generated markup\n\n```html\n%s\n```\n", strings.TrimSpace(state.GeneratedCode))
	}
	return b.String()
}
