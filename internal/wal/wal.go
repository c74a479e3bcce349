// Package wal reads the colour scheme pywal writes after processing a wallpaper.
package wal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// slots is the number of terminal colours pywal generates.
const slots = 16

// ErrNoColors is returned when a scheme holds no usable colours.
var ErrNoColors = errors.New("pywal scheme has no colors")

// Scheme mirrors pywal's colors.json.
type Scheme struct {
	Wallpaper string            `json:"wallpaper"`
	Special   map[string]string `json:"special"`
	Colors    map[string]string `json:"colors"`
}

// DefaultPath returns where pywal caches its scheme.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "wal", "colors.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".cache", "wal", "colors.json")
	}
	return filepath.Join(home, ".cache", "wal", "colors.json")
}

// Load reads the scheme at path and returns color0..color15 in order.
func Load(path string) ([]string, error) {
	scheme, err := LoadScheme(path)
	if err != nil {
		return nil, err
	}
	return scheme.Ordered()
}

// LoadScheme parses the scheme file at path.
func LoadScheme(path string) (*Scheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pywal colors: %w", err)
	}

	var scheme Scheme
	if err := json.Unmarshal(data, &scheme); err != nil {
		return nil, fmt.Errorf("failed to parse pywal colors %s: %w", path, err)
	}
	return &scheme, nil
}

// Ordered returns the numbered colours in slot order, skipping empty slots.
func (s *Scheme) Ordered() ([]string, error) {
	colors := make([]string, 0, slots)
	for i := 0; i < slots; i++ {
		value := strings.TrimSpace(s.Colors["color"+strconv.Itoa(i)])
		if value == "" {
			continue
		}
		colors = append(colors, value)
	}
	if len(colors) == 0 {
		return nil, ErrNoColors
	}
	return colors, nil
}
