package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/wlmerge/internal/logger"
)

// MaxListedFiles caps how many affected files a warning prints.
const MaxListedFiles = 10

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning, in yellow when out is a terminal.
func (w Warning) Display(out io.Writer) {
	w.Render(out, logger.IsTerminal(out))
}

// Render writes the warning with or without color.
func (w Warning) Render(out io.Writer, colored bool) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		if len(w.Files) == 1 {
			b.WriteString("    Affected file:\n")
		} else {
			b.WriteString("    Affected files:\n")
		}

		for i, file := range w.Files {
			if i == MaxListedFiles {
				fmt.Fprintf(&b, "      ... and %d more\n", len(w.Files)-MaxListedFiles)
				break
			}
			fmt.Fprintf(&b, "      %d. %s\n", i+1, file)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	if !colored {
		fmt.Fprint(out, b.String())
		return
	}
	c := color.New(color.FgYellow)
	c.EnableColor()
	c.Fprint(out, b.String())
}

// WarnManyInputs creates the warning shown when a merge will hold count
// files open at once. limit is the process open-file soft limit, or 0 when
// unknown.
func WarnManyInputs(count int, limit uint64) Warning {
	w := Warning{
		Title:   "Large Number of Input Files",
		Message: fmt.Sprintf("Processing %d files. This may exceed system file descriptor limits.", count),
	}
	if limit > 0 {
		w.Message += fmt.Sprintf(" (open file limit: %d)", limit)
		w.Suggestion = "Raise the limit with 'ulimit -n' or merge in batches"
	} else {
		w.Suggestion = "Merge in batches if opening files fails"
	}
	return w
}

// WarnExcludedFiles creates a warning listing files removed from the inputs.
func WarnExcludedFiles(title string, files []string) Warning {
	return Warning{
		Title: title,
		Files: files,
	}
}
