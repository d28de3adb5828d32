package schematypes

import (
	edlib "github.com/hbollon/go-edlib"

	"github.com/MaximilianKoestler/hcloud-openapi/schema"
)

// StalePin is an entry whose path matched no location of the current input.
type StalePin struct {
	Entry Entry
	// Closest is the most similar current location, empty if none was found.
	Closest string
	// Similarity is the Levenshtein similarity of Closest, between 0 and 1.
	Similarity float32
}

// StalePins returns the entries whose path is not among locations, each with
// the most similar location as a hint for fixing the file by hand.
func StalePins(entries []Entry, locations []schema.Location) []StalePin {
	known := make(map[string]struct{}, len(locations))
	for _, loc := range locations {
		known[loc.String()] = struct{}{}
	}

	var stale []StalePin
	for _, e := range entries {
		path := e.Location().String()
		if _, found := known[path]; found {
			continue
		}
		pin := StalePin{Entry: e}
		for _, loc := range locations {
			candidate := loc.String()
			score, err := edlib.StringsSimilarity(path, candidate, edlib.Levenshtein)
			if err != nil {
				continue
			}
			if score > pin.Similarity || (score == pin.Similarity && pin.Closest != "" && candidate < pin.Closest) {
				pin.Closest, pin.Similarity = candidate, score
			}
		}
		stale = append(stale, pin)
	}
	return stale
}
