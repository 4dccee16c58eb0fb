package diagnostics

import (
	"fmt"
	"io"

	"github.com/morler/texwatch/constants/lipgloss"
	"github.com/morler/texwatch/diagnostics/models"
	"github.com/morler/texwatch/utils"
)

// RenderOptions controls how diagnostics are printed.
type RenderOptions struct {
	// Highlight enables chroma highlighting of line excerpts.
	Highlight bool
	// Theme is the chroma style used when Highlight is set.
	Theme string
}

// Render prints errors in red and warnings in yellow, in the order given.
func Render(w io.Writer, diags []models.Diagnostic, opts RenderOptions) {
	errs, warns := Count(diags)

	if errs > 0 {
		fmt.Fprintln(w, lipgloss.Red.Render(fmt.Sprintf("Errors detected: %d", errs)))
	}

	for _, d := range diags {
		switch d.Severity {
		case models.SevError:
			fmt.Fprintln(w, formatError(d, opts))
		case models.SevWarning:
			fmt.Fprintln(w, lipgloss.Yellow.Render(d.Message))
		}
	}

	if warns > 0 {
		fmt.Fprintln(w, lipgloss.Yellow.Render(fmt.Sprintf("Warnings: %d", warns)))
	}
}

func formatError(d models.Diagnostic, opts RenderOptions) string {
	if d.LineRef == nil {
		return lipgloss.Red.Render(d.Message)
	}

	excerpt := d.LineRef.Excerpt
	if opts.Highlight {
		excerpt = utils.HighlightExcerpt(excerpt, opts.Theme)
	}
	return fmt.Sprintf("%s %s %s",
		lipgloss.Red.Render(d.Message),
		lipgloss.Red.Render(fmt.Sprintf("(Line %d:", d.LineRef.Line)),
		excerpt+lipgloss.Red.Render(")"))
}
