package cmd

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceWeave is the merge order written out naively: round i takes line i
// of every input that still has one, and keeps first appearances.
func referenceWeave(inputs [][]string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; ; i++ {
		progressed := false
		for _, lines := range inputs {
			if i >= len(lines) {
				continue
			}
			progressed = true
			if !seen[lines[i]] {
				seen[lines[i]] = true
				out = append(out, lines[i])
			}
		}
		if !progressed {
			return out
		}
	}
}

func TestEndToEndMatchesReferenceWeave(t *testing.T) {
	dir := t.TempDir()
	rng := rand.New(rand.NewPCG(7, 11))

	// Names sort in creation order so the glob lists them that way.
	var inputs [][]string
	for f := 0; f < 6; f++ {
		n := 50 + rng.IntN(250)
		lines := make([]string, n)
		for i := range lines {
			lines[i] = fmt.Sprintf("word%03d", rng.IntN(200))
		}
		inputs = append(inputs, lines)

		writeFile(t, filepath.Join(dir, "lists", fmt.Sprintf("part-%d.txt", f)), strings.Join(lines, "\n")+"\n")
	}

	output := filepath.Join(dir, "merged.txt")
	cfgPath := writeFile(t, filepath.Join(dir, "cfg.yaml"), "progress_interval: 25\nread_buffer_kb: 1\n")

	_, stderr, err := executeRoot(t, "--config", cfgPath, "-o", output, filepath.Join(dir, "lists", "part-?.txt"))
	require.NoError(t, err)

	want := referenceWeave(inputs)
	got := readFile(t, output)

	require.Equal(t, strings.Join(want, "\n")+"\n", got)
	assert.Contains(t, stderr, "Progress: [")
	assert.Contains(t, stderr, fmt.Sprintf("Unique lines written: %d", len(want)))
}

func TestEndToEndRerunIsStable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "alpha\nbeta\ngamma\n")
	writeFile(t, filepath.Join(dir, "b.txt"), "beta\ndelta\n")
	output := filepath.Join(dir, "out", "merged.txt")
	pattern := filepath.Join(dir, "*.txt")

	_, _, err := executeRoot(t, "-o", output, pattern)
	require.NoError(t, err)
	first := readFile(t, output)

	_, _, err = executeRoot(t, "-o", output, pattern)
	require.NoError(t, err)

	assert.Equal(t, "alpha\nbeta\ndelta\ngamma\n", first)
	assert.Equal(t, first, readFile(t, output))
}
