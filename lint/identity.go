package lint

// Line identity across runs is the line's exact text. When lines are
// inserted or deleted, numbers shift but text usually does not, so cached
// per-line findings can be re-anchored onto the new numbering by text.
//
// The one correctness trap is duplicate text: if a text occurs on more than
// one line there is no way to tell which occurrence a cached finding belongs
// to, so such texts are excluded from the index entirely and their lines are
// always reprocessed fresh. Whole prose lines rarely repeat verbatim, so the
// cost is negligible.

// BuildIndex builds the text→lineNumber association for a line set,
// including a text only if it occurs exactly once.
func BuildIndex(lines []Line) map[string]int {
	counts := make(map[string]int, len(lines))
	for _, line := range lines {
		counts[line.Text]++
	}
	index := make(map[string]int, len(lines))
	for _, line := range lines {
		if counts[line.Text] == 1 {
			index[line.Text] = line.Number
		}
	}
	return index
}

// Reanchor rewrites the line numbers of previously cached findings using the
// current file's text index. A finding whose text is gone, or is now
// duplicated, gets UnanchoredLine; the number field always holds a concrete
// value and unanchored entries are dropped before results surface.
func Reanchor(flagged []Line, index map[string]int) []Line {
	reanchored := make([]Line, len(flagged))
	for i, line := range flagged {
		if number, ok := index[line.Text]; ok {
			reanchored[i] = line.WithNumber(number)
		} else {
			reanchored[i] = line.WithNumber(UnanchoredLine)
		}
	}
	return reanchored
}
