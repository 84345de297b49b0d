package display

import (
	"bytes"
	"testing"
)

func TestListFiles(t *testing.T) {
	var buf bytes.Buffer

	ListFiles(&buf, []string{"words/b.txt", "words/a.txt", "extra.txt"}, "merged.txt")

	want := "Resolved input files:\n" +
		"  [1/3] words/b.txt\n" +
		"  [2/3] words/a.txt\n" +
		"  [3/3] extra.txt\n" +
		"✓ 3 files would be merged into merged.txt\n"
	if buf.String() != want {
		t.Errorf("ListFiles() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestFileListingColor(t *testing.T) {
	var buf bytes.Buffer
	l := NewFileListing(&buf, 1)
	l.colored = true

	l.Step("a.txt")
	l.Complete("out.txt")

	want := "\x1b[36m  [1/1] a.txt\x1b[0m\n\x1b[32m✓\x1b[0m 1 files would be merged into out.txt\n"
	if buf.String() != want {
		t.Errorf("colored listing = %q, want %q", buf.String(), want)
	}
}
