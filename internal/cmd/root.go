package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for wlmerge
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wlmerge [flags] <pattern>...",
		Short: "Weave-merge wordlists with deduplication",
		Long: `wlmerge merges wordlist files into one deduplicated output.

Lines are taken round-robin: the first line of every input, then the second
line of every input, and so on. Each distinct line is written once, at its
first appearance in that order. Inputs are streamed, so only the set of lines
already written is held in memory.

Patterns are literal paths or globs. In a glob, '*' matches any run of
characters and '?' matches exactly one; wildcards apply to the file name only
and directories are not searched recursively. Quote globs so the shell passes
them through unexpanded.

Configuration is loaded from .wlmerge/config.yaml (or $WLMERGE_HOME/config.yaml)
if present. CLI flags override configuration file settings.

Examples:
  # Merge every .txt file in a directory
  wlmerge -o merged.txt 'lists/*.txt'

  # Mix literal files and globs; order of patterns is merge order
  wlmerge -o out.txt rockyou.txt 'leaks/dump-??.txt'

  # Leave some files out and confirm duplicates byte for byte
  wlmerge --exclude '*.bak' --exact 'lists/*'

  # Show which files would be merged
  wlmerge --dry-run 'lists/*.txt'`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runMerge,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints the error
		SilenceErrors: true,
	}

	cmd.Flags().StringP("output", "o", "merged.txt", "Output file path")
	cmd.Flags().String("config", "", "Path to config file (default: .wlmerge/config.yaml)")
	cmd.Flags().StringArray("exclude", nil, "Glob of resolved files to leave out (repeatable)")
	cmd.Flags().Bool("exact", false, "Compare line content on hash matches instead of trusting the hash")
	cmd.Flags().Int("reserve", 10_000_000, "Number of unique lines to reserve memory for up front")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error (default: info)")
	cmd.Flags().String("log-dir", "", "Also write a run log to this directory")
	cmd.Flags().Bool("dry-run", false, "List the resolved input files without merging")

	return cmd
}
