// Package display provides terminal output for warnings and resolved-file
// listings shown to the operator of a wlmerge run.
//
// # Warning Messages
//
// Display warnings with optional components:
//
//	warning := display.Warning{
//	    Title:      "Large Number of Input Files",
//	    Message:    "Processing 2000 files.",
//	    Files:      []string{"a.txt", "b.txt"},
//	    Suggestion: "Merge in batches",
//	}
//	warning.Display(os.Stderr)
//
// Warnings are yellow when written to a terminal and plain otherwise.
//
// # Open File Checks
//
// A merge holds every input open at once. CheckInputCount compares the input
// count against a configured threshold and the process open-file limit
// reported by OpenFileLimit:
//
//	limit, ok := display.OpenFileLimit()
//	if w, warn := display.CheckInputCount(len(files), 100, limit, ok); warn {
//	    w.Display(os.Stderr)
//	}
//
// # File Listings
//
// ListFiles prints resolved inputs in merge order for dry runs.
//
// All functions accept io.Writer interfaces for testability.
package display
