package prefs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/opencode-ai/macaccent/internal/palette"
)

// fakeDefaults emulates the defaults tool against an in-memory store.
type fakeDefaults struct {
	values map[string]string
	calls  [][]string
}

func newFakeDefaults() *fakeDefaults {
	return &fakeDefaults{values: make(map[string]string)}
}

func (f *fakeDefaults) Exec(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if len(args) < 3 {
		return nil, []byte("usage"), errors.New("exit status 255")
	}
	key := args[1] + "/" + args[2]
	switch args[0] {
	case "read":
		value, ok := f.values[key]
		if !ok {
			return nil, []byte("The domain/default pair does not exist"), errors.New("exit status 1")
		}
		return []byte(value + "\n"), nil, nil
	case "write":
		f.values[key] = args[3]
		return nil, nil, nil
	case "delete":
		if _, ok := f.values[key]; !ok {
			return nil, []byte("not found"), errors.New("exit status 1")
		}
		delete(f.values, key)
		return nil, nil, nil
	}
	return nil, nil, errors.New("unknown verb")
}

func (f *fakeDefaults) lastCall() []string {
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

type fakeExecutor struct {
	stdout   []byte
	stderr   []byte
	err      error
	lastArgs []string
}

func (f *fakeExecutor) Exec(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.lastArgs = append([]string{name}, args...)
	return f.stdout, f.stderr, f.err
}

func TestSetAccentThenRead(t *testing.T) {
	ctx := context.Background()
	exec := newFakeDefaults()
	store := NewStore(exec, Options{})

	store.SetAccent(ctx, palette.Pink)
	want := []string{"defaults", "write", "Apple Global Domain", "AppleAccentColor", "6"}
	if got := exec.lastCall(); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected command: %q", got)
	}
	if got := store.ReadAccent(ctx); got != palette.Pink {
		t.Fatalf("expected accent 6, got %d", got)
	}

	store.SetAccent(ctx, palette.Graphite)
	if got := store.ReadAccent(ctx); got != palette.Graphite {
		t.Fatalf("expected accent -1, got %d", got)
	}
}

func TestSetAccentSentinelDeletes(t *testing.T) {
	ctx := context.Background()
	exec := newFakeDefaults()
	store := NewStore(exec, Options{})

	store.SetAccent(ctx, palette.Green)
	store.SetAccent(ctx, palette.Sentinel)

	if got := exec.lastCall(); len(got) != 4 || got[1] != "delete" || got[3] != AccentKey {
		t.Fatalf("expected delete command, got %q", got)
	}
	if got := store.ReadAccent(ctx); got != palette.Sentinel {
		t.Fatalf("expected sentinel after delete, got %d", got)
	}
}

func TestSetAccentUnknownKeyDeletes(t *testing.T) {
	ctx := context.Background()
	exec := newFakeDefaults()
	store := NewStore(exec, Options{})

	store.SetAccent(ctx, palette.Key(256))
	if got := exec.lastCall(); got[1] != "delete" {
		t.Fatalf("expected delete for unknown key, got %q", got)
	}
	if got := store.ReadAccent(ctx); got != palette.Sentinel {
		t.Fatalf("expected sentinel, got %d", got)
	}
}

func TestReadAccentUnparsable(t *testing.T) {
	exec := &fakeExecutor{stdout: []byte("not a number\n")}
	store := NewStore(exec, Options{})

	if got := store.ReadAccent(context.Background()); got != palette.Sentinel {
		t.Fatalf("expected sentinel for unparsable output, got %d", got)
	}
	if exec.lastArgs[1] != "read" || exec.lastArgs[3] != AccentKey {
		t.Fatalf("unexpected command: %q", exec.lastArgs)
	}
}

func TestSetHighlightThenRead(t *testing.T) {
	ctx := context.Background()
	exec := newFakeDefaults()
	store := NewStore(exec, Options{})

	store.SetHighlight(ctx, palette.Green)
	got := exec.lastCall()
	if got[1] != "write" || got[3] != HighlightKey {
		t.Fatalf("unexpected command: %q", got)
	}
	if got[4] != "0.752941 0.964706 0.678431 Green" {
		t.Fatalf("unexpected highlight value %q", got[4])
	}

	key, err := store.ReadHighlight(ctx)
	if err != nil {
		t.Fatalf("ReadHighlight failed: %v", err)
	}
	if key != palette.Green {
		t.Fatalf("expected highlight 3, got %d", key)
	}
}

func TestSetHighlightSentinelDeletes(t *testing.T) {
	ctx := context.Background()
	exec := newFakeDefaults()
	store := NewStore(exec, Options{})

	store.SetHighlight(ctx, palette.Purple)
	store.SetHighlight(ctx, palette.Sentinel)

	key, err := store.ReadHighlight(ctx)
	if err != nil {
		t.Fatalf("ReadHighlight failed: %v", err)
	}
	if key != palette.Sentinel {
		t.Fatalf("expected sentinel, got %d", key)
	}
}

func TestReadHighlightParsing(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   palette.Key
	}{
		{"plain", "1.000000 0.749020 0.823529 Pink\n", palette.Pink},
		{"quoted", "\"0.847059 0.847059 0.862745 Graphite\"\n", palette.Graphite},
		{"no newline", "1.000000 0.733333 0.721569 Red", palette.Red},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(&fakeExecutor{stdout: []byte(tt.output)}, Options{})
			got, err := store.ReadHighlight(context.Background())
			if err != nil {
				t.Fatalf("ReadHighlight failed: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestReadHighlightUnknownName(t *testing.T) {
	for _, output := range []string{"0.1 0.2 0.3 Teal\n", "0.1 0.2\n", ""} {
		store := NewStore(&fakeExecutor{stdout: []byte(output)}, Options{})
		_, err := store.ReadHighlight(context.Background())
		if !errors.Is(err, ErrUnknownColorName) {
			t.Fatalf("output %q: expected ErrUnknownColorName, got %v", output, err)
		}
	}
}

func TestReadHighlightCommandFailure(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("exit status 1"), stderr: []byte("does not exist")}
	store := NewStore(exec, Options{})

	key, err := store.ReadHighlight(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if key != palette.Sentinel {
		t.Fatalf("expected sentinel, got %d", key)
	}
}

func TestWriteFailureIsNotSurfaced(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("exit status 1")}
	store := NewStore(exec, Options{})

	// Must not panic or block; there is nothing to return.
	store.SetAccent(context.Background(), palette.Red)
	store.SetHighlight(context.Background(), palette.Red)
	if exec.lastArgs[1] != "write" {
		t.Fatalf("expected a write attempt, got %q", exec.lastArgs)
	}
}

func TestCustomOptions(t *testing.T) {
	exec := &fakeExecutor{stdout: []byte("2\n")}
	store := NewStore(exec, Options{Binary: "/usr/bin/defaults", Domain: "-g"})

	if got := store.ReadAccent(context.Background()); got != palette.Yellow {
		t.Fatalf("expected 2, got %d", got)
	}
	want := "/usr/bin/defaults|read|-g|AppleAccentColor"
	if got := strings.Join(exec.lastArgs, "|"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDryRunExecutor(t *testing.T) {
	var out bytes.Buffer
	dry := &DryRunExecutor{Out: &out}
	store := NewStore(dry, Options{})

	store.SetHighlight(context.Background(), palette.Green)
	if got := store.ReadAccent(context.Background()); got != palette.Sentinel {
		t.Fatalf("expected dry-run read to yield sentinel, got %d", got)
	}

	cmds := dry.Commands()
	if len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cmds))
	}
	want := "defaults write 'Apple Global Domain' AppleHighlightColor '0.752941 0.964706 0.678431 Green'"
	if cmds[0] != want {
		t.Fatalf("expected %q, got %q", want, cmds[0])
	}
	if !strings.Contains(out.String(), want) {
		t.Fatalf("expected command echoed to output, got %q", out.String())
	}
}

func TestFormatCommand(t *testing.T) {
	got := FormatCommand("defaults", "write", "it's", "")
	want := `defaults write 'it'\''s' ''`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
