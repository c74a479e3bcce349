// Package matcher picks the palette colour closest to a set of hex colours.
package matcher

import (
	"errors"
	"fmt"

	"github.com/opencode-ai/macaccent/internal/colormath"
	"github.com/opencode-ai/macaccent/internal/models"
	"github.com/opencode-ai/macaccent/internal/palette"
)

// ErrNoColors is returned when a multi-colour match gets an empty list.
var ErrNoColors = errors.New("no colors to match")

// ClosestSingle returns the palette key nearest to hex.
// Ties keep the lowest key.
func ClosestSingle(hex string) (palette.Key, error) {
	rgb, err := colormath.HexToRGB(hex)
	if err != nil {
		return palette.Sentinel, err
	}
	return closestRGB(rgb), nil
}

func closestRGB(rgb colormath.RGB) palette.Key {
	best := colormath.MaxDistance
	closest := palette.Sentinel
	for _, key := range palette.Keys() {
		d := colormath.Distance(rgb, palette.MustLookup(key).Color)
		if d < best {
			best = d
			closest = key
		}
	}
	return closest
}

// ClosestCumulative returns the palette key with the smallest distance summed
// over every input colour.
func ClosestCumulative(hexes []string) (palette.Key, error) {
	colors, err := parseAll(hexes)
	if err != nil {
		return palette.Sentinel, err
	}

	best := colormath.MaxDistance * float64(len(colors))
	closest := palette.Sentinel
	for _, key := range palette.Keys() {
		total := cumulativeDistance(colors, palette.MustLookup(key).Color)
		if total < best {
			best = total
			closest = key
		}
	}
	return closest, nil
}

// ClosestMajority matches each colour on its own and returns the key chosen
// most often. Equal counts go to the lowest key.
func ClosestMajority(hexes []string) (palette.Key, error) {
	colors, err := parseAll(hexes)
	if err != nil {
		return palette.Sentinel, err
	}

	votes := tally(colors)
	winner := palette.Sentinel
	most := 0
	for _, key := range palette.Keys() {
		if votes[key] > most {
			most = votes[key]
			winner = key
		}
	}
	return winner, nil
}

// Closest dispatches to the matcher for policy.
func Closest(policy models.Policy, hexes []string) (palette.Key, error) {
	switch policy {
	case models.PolicyMajority, "":
		return ClosestMajority(hexes)
	case models.PolicyCumulative:
		return ClosestCumulative(hexes)
	default:
		return palette.Sentinel, fmt.Errorf("unsupported match policy %q", policy)
	}
}

// Score describes how one palette entry fared against the inputs.
type Score struct {
	Key      palette.Key `json:"key"`
	Name     string      `json:"name"`
	Distance float64     `json:"distance"`
	Votes    int         `json:"votes"`
}

// Scores returns the cumulative distance and nearest-match votes for every
// palette key, in ascending key order.
func Scores(hexes []string) ([]Score, error) {
	colors, err := parseAll(hexes)
	if err != nil {
		return nil, err
	}

	votes := tally(colors)
	scores := make([]Score, 0, len(palette.Keys()))
	for _, key := range palette.Keys() {
		entry := palette.MustLookup(key)
		scores = append(scores, Score{
			Key:      key,
			Name:     entry.Name,
			Distance: cumulativeDistance(colors, entry.Color),
			Votes:    votes[key],
		})
	}
	return scores, nil
}

func tally(colors []colormath.RGB) map[palette.Key]int {
	votes := make(map[palette.Key]int)
	for _, rgb := range colors {
		votes[closestRGB(rgb)]++
	}
	return votes
}

func cumulativeDistance(colors []colormath.RGB, ref colormath.RGB) float64 {
	total := 0.0
	for _, rgb := range colors {
		total += colormath.Distance(rgb, ref)
	}
	return total
}

func parseAll(hexes []string) ([]colormath.RGB, error) {
	if len(hexes) == 0 {
		return nil, ErrNoColors
	}
	colors := make([]colormath.RGB, 0, len(hexes))
	for _, hex := range hexes {
		rgb, err := colormath.HexToRGB(hex)
		if err != nil {
			return nil, err
		}
		colors = append(colors, rgb)
	}
	return colors, nil
}
