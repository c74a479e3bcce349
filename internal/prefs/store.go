// Package prefs reads and writes the macOS accent and highlight colour
// preferences through the defaults tool.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/opencode-ai/macaccent/internal/logging"
	"github.com/opencode-ai/macaccent/internal/palette"
	"github.com/rs/zerolog"
)

// Preference keys in the global domain.
const (
	AccentKey    = "AppleAccentColor"
	HighlightKey = "AppleHighlightColor"
)

// Defaults for Options.
const (
	DefaultBinary = "defaults"
	DefaultDomain = "Apple Global Domain"
)

// ErrUnknownColorName is returned when the stored highlight value does not end
// in a palette colour name.
var ErrUnknownColorName = errors.New("defaults returned unexpected color text")

// Options configure a Store.
type Options struct {
	// Binary is the defaults executable.
	Binary string

	// Domain is the preference domain holding both keys.
	Domain string

	// Timeout bounds each command. Zero means no limit.
	Timeout time.Duration
}

// Store gives access to the accent and highlight preferences.
// It holds no state of its own: every read runs the defaults tool again and
// every write commits immediately.
type Store struct {
	exec   Executor
	opts   Options
	logger zerolog.Logger
}

// NewStore creates a Store. A nil executor runs commands locally.
func NewStore(exec Executor, opts Options) *Store {
	if exec == nil {
		exec = LocalExecutor{}
	}
	if strings.TrimSpace(opts.Binary) == "" {
		opts.Binary = DefaultBinary
	}
	if strings.TrimSpace(opts.Domain) == "" {
		opts.Domain = DefaultDomain
	}
	return &Store{
		exec:   exec,
		opts:   opts,
		logger: logging.Component("prefs"),
	}
}

// ReadAccent returns the stored accent colour, or the sentinel when none is
// set or the value cannot be read.
func (s *Store) ReadAccent(ctx context.Context) palette.Key {
	stdout, ok := s.read(ctx, AccentKey)
	if !ok {
		return palette.Sentinel
	}

	value, err := strconv.Atoi(strings.TrimSpace(string(stdout)))
	if err != nil {
		s.logger.Debug().Str("output", string(stdout)).Msg("unparsable accent color")
		return palette.Sentinel
	}
	return palette.Key(value)
}

// SetAccent stores key as the accent colour. The sentinel, or any key outside
// the palette, deletes the preference instead. Command failures are logged and
// otherwise ignored.
func (s *Store) SetAccent(ctx context.Context, key palette.Key) {
	if !isCustom(key) {
		s.delete(ctx, AccentKey)
		return
	}
	s.write(ctx, AccentKey, strconv.Itoa(int(key)))
}

// ReadHighlight returns the stored highlight colour, or the sentinel when none
// is set. A stored value naming no palette colour yields ErrUnknownColorName.
func (s *Store) ReadHighlight(ctx context.Context) (palette.Key, error) {
	stdout, ok := s.read(ctx, HighlightKey)
	if !ok {
		return palette.Sentinel, nil
	}

	name := highlightName(string(stdout))
	for _, key := range palette.Keys() {
		if palette.MustLookup(key).Name == name {
			return key, nil
		}
	}
	return palette.Sentinel, fmt.Errorf("%w: %q", ErrUnknownColorName, strings.TrimSpace(string(stdout)))
}

// SetHighlight stores key as the highlight colour using the
// "<r> <g> <b> <Name>" encoding. The sentinel, or any key outside the palette,
// deletes the preference instead.
func (s *Store) SetHighlight(ctx context.Context, key palette.Key) {
	if !isCustom(key) {
		s.delete(ctx, HighlightKey)
		return
	}
	s.write(ctx, HighlightKey, HighlightValue(palette.MustLookup(key)))
}

// HighlightValue encodes an entry as macOS stores highlight colours.
func HighlightValue(entry palette.Entry) string {
	return fmt.Sprintf("%f %f %f %s", entry.Color.R, entry.Color.G, entry.Color.B, entry.Name)
}

// highlightName extracts the colour name that follows the three channel values.
func highlightName(output string) string {
	fields := strings.Fields(output)
	if len(fields) < 4 {
		return ""
	}
	return strings.TrimRight(fields[3], `"';`)
}

func isCustom(key palette.Key) bool {
	return key != palette.Sentinel && palette.Valid(key)
}

func (s *Store) read(ctx context.Context, key string) ([]byte, bool) {
	stdout, stderr, err := s.run(ctx, "read", s.opts.Domain, key)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Str("key", key).
			Str("stderr", strings.TrimSpace(string(stderr))).
			Msg("preference not readable, using default")
		return nil, false
	}
	return stdout, true
}

func (s *Store) write(ctx context.Context, key, value string) {
	_, stderr, err := s.run(ctx, "write", s.opts.Domain, key, value)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Str("key", key).
			Str("stderr", strings.TrimSpace(string(stderr))).
			Msg("preference write failed")
	}
}

func (s *Store) delete(ctx context.Context, key string) {
	_, stderr, err := s.run(ctx, "delete", s.opts.Domain, key)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Str("key", key).
			Str("stderr", strings.TrimSpace(string(stderr))).
			Msg("preference delete failed")
	}
}

func (s *Store) run(ctx context.Context, args ...string) ([]byte, []byte, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	s.logger.Debug().Str("cmd", FormatCommand(s.opts.Binary, args...)).Msg("running defaults")
	return s.exec.Exec(ctx, s.opts.Binary, args...)
}
