// Package weave merges line-oriented inputs into one deduplicated stream.
//
// Merging proceeds in rounds. Each round reads one line from every input
// that has not reached end of stream, in the fixed order the inputs were
// given, and writes the line only if its content has not been written
// before. The result is a round-robin interleaving: line 1 of every file,
// then line 2 of every file, and so on, with shorter files dropping out as
// they end.
//
//	m := weave.NewMerger(weave.DefaultOptions(), log)
//	result, err := m.Merge([]string{"a.txt", "b.txt"}, out)
//
// Deduplication keys are 64-bit xxHash digests kept in a SeenSet. HashSet
// stores digests only, so two distinct lines with equal digests are treated
// as duplicates. VerifiedSet also stores line content and never conflates
// distinct lines.
//
// The merge runs on the calling goroutine and holds one open file per input
// for as long as that input has lines left.
package weave
