package util

// Truncate shortens s to at most max runes, appending an ellipsis when
// anything was cut. max values below 4 return s unchanged since there is
// no room for both content and the marker.
func Truncate(s string, max int) string {
	if max < 4 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
