package diagnostics

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/morler/texwatch/diagnostics/models"
)

const (
	// ErrorMarker starts every error report in TeX's log output.
	ErrorMarker = "!"
	// WarningMarker is matched case-sensitively anywhere in a line.
	WarningMarker = "Warning"

	// lineRefLookahead is how many lines after an error are searched for "l.<n>".
	lineRefLookahead = 4
)

var lineRefPattern = regexp.MustCompile(`^l\.(\d+)\s+(.*)$`)

// Parse extracts errors and warnings from raw compiler output, in input order.
// It never fails: unexpected text simply yields fewer or less detailed diagnostics.
func Parse(raw string) []models.Diagnostic {
	if raw == "" {
		return nil
	}

	lines := splitLines(raw)
	var diags []models.Diagnostic

	for i, line := range lines {
		if strings.HasPrefix(line, ErrorMarker) {
			diags = append(diags, models.Diagnostic{
				Severity: models.SevError,
				Message:  line,
				LineRef:  findLineRef(lines, i),
			})
		}

		if strings.Contains(line, WarningMarker) {
			diags = append(diags, models.Diagnostic{
				Severity: models.SevWarning,
				Message:  line,
			})
		}
	}

	return diags
}

// Count returns the number of errors and warnings in diags.
func Count(diags []models.Diagnostic) (errors int, warnings int) {
	for _, d := range diags {
		switch d.Severity {
		case models.SevError:
			errors++
		case models.SevWarning:
			warnings++
		}
	}
	return errors, warnings
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []models.Diagnostic) bool {
	errs, _ := Count(diags)
	return errs > 0
}

func findLineRef(lines []string, at int) *models.LineRef {
	end := at + 1 + lineRefLookahead
	if end > len(lines) {
		end = len(lines)
	}

	for j := at + 1; j < end; j++ {
		m := lineRefPattern.FindStringSubmatch(lines[j])
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			// digits too large for an int
			return nil
		}
		return &models.LineRef{Line: n, Excerpt: m[2]}
	}
	return nil
}

func splitLines(raw string) []string {
	lines := strings.Split(raw, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
