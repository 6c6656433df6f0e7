package cli

import (
	"sort"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Suggest returns a message suggesting the closest matches to needle from haystack,
// or the empty string if nothing is within maxDistance edits of it.
func Suggest(needle string, haystack []string, maxDistance int) string {
	r := []rune(needle)
	type suggestion struct {
		s    string
		dist int
	}
	options := make([]suggestion, 0, len(haystack))
	for _, straw := range haystack {
		if straw == "" {
			continue
		}
		if dist := levenshtein.DistanceForStrings(r, []rune(straw), levenshtein.DefaultOptions); dist <= maxDistance {
			options = append(options, suggestion{s: straw, dist: dist})
		}
	}
	if len(options) == 0 {
		return ""
	}
	sort.SliceStable(options, func(i, j int) bool { return options[i].dist < options[j].dist })
	msg := "Maybe you meant "
	for i, o := range options {
		if i > 0 {
			if i < len(options)-1 {
				msg += ", "
			} else {
				msg += " or "
			}
		}
		msg += o.s
	}
	return msg + "?"
}
