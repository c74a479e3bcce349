// Package palette defines the fixed set of macOS accent colours.
package palette

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/opencode-ai/macaccent/internal/colormath"
)

// Palette errors.
var (
	ErrUnknownKey  = errors.New("unknown color key")
	ErrUnknownName = errors.New("unknown color name")
)

// Key is the colour index macOS stores for AppleAccentColor.
type Key int

// Sentinel means no custom colour is set; macOS falls back to Blue.
const Sentinel Key = -2

// Palette keys as macOS encodes them.
const (
	Blue     Key = Sentinel
	Graphite Key = -1
	Red      Key = 0
	Orange   Key = 1
	Yellow   Key = 2
	Green    Key = 3
	Purple   Key = 5
	Pink     Key = 6
)

// Entry is a named palette colour.
type Entry struct {
	Name  string
	Color colormath.RGB
}

var entries = map[Key]Entry{
	Blue:     {Name: "Blue", Color: colormath.RGB{R: 0.000000, G: 0.874510, B: 1.000000}},
	Graphite: {Name: "Graphite", Color: colormath.RGB{R: 0.847059, G: 0.847059, B: 0.862745}},
	Red:      {Name: "Red", Color: colormath.RGB{R: 1.000000, G: 0.733333, B: 0.721569}},
	Orange:   {Name: "Orange", Color: colormath.RGB{R: 1.000000, G: 0.874510, B: 0.701961}},
	Yellow:   {Name: "Yellow", Color: colormath.RGB{R: 1.000000, G: 0.937255, B: 0.690196}},
	Green:    {Name: "Green", Color: colormath.RGB{R: 0.752941, G: 0.964706, B: 0.678431}},
	Purple:   {Name: "Purple", Color: colormath.RGB{R: 0.968627, G: 0.831373, B: 1.000000}},
	Pink:     {Name: "Pink", Color: colormath.RGB{R: 1.000000, G: 0.749020, B: 0.823529}},
}

var orderedKeys = func() []Key {
	keys := make([]Key, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}()

// Keys returns every palette key in ascending order.
func Keys() []Key {
	out := make([]Key, len(orderedKeys))
	copy(out, orderedKeys)
	return out
}

// Lookup returns the entry for key.
func Lookup(key Key) (Entry, bool) {
	entry, ok := entries[key]
	return entry, ok
}

// MustLookup returns the entry for key and panics if it is not in the palette.
func MustLookup(key Key) Entry {
	entry, ok := entries[key]
	if !ok {
		panic(fmt.Sprintf("palette: no entry for key %d", key))
	}
	return entry
}

// Valid reports whether key is in the palette.
func Valid(key Key) bool {
	_, ok := entries[key]
	return ok
}

// ByName finds the key whose entry name matches, ignoring case.
func ByName(name string) (Key, bool) {
	name = strings.TrimSpace(name)
	for _, key := range orderedKeys {
		if strings.EqualFold(entries[key].Name, name) {
			return key, true
		}
	}
	return 0, false
}

// Parse resolves a colour given as a name, an integer key, or "default".
func Parse(value string) (Key, error) {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "default") {
		return Sentinel, nil
	}
	if key, ok := ByName(value); ok {
		return key, nil
	}
	if n, err := strconv.Atoi(value); err == nil {
		if !Valid(Key(n)) {
			return 0, fmt.Errorf("%w: %d", ErrUnknownKey, n)
		}
		return Key(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownName, value)
}

// Name returns the display name for key, or "unknown".
func (k Key) Name() string {
	if entry, ok := entries[k]; ok {
		return entry.Name
	}
	return "unknown"
}

func (k Key) String() string {
	return strconv.Itoa(int(k))
}
