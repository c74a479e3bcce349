package prefs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

// Executor runs an external command without a shell.
type Executor interface {
	Exec(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// LocalExecutor runs commands on the local machine.
type LocalExecutor struct{}

// Exec runs name with args and captures its output.
func (LocalExecutor) Exec(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// ErrDryRun is returned by DryRunExecutor for every command.
var ErrDryRun = errors.New("dry run: command not executed")

// DryRunExecutor prints commands instead of running them. Reads therefore
// behave as if no custom colour were set.
type DryRunExecutor struct {
	Out io.Writer

	mu       sync.Mutex
	commands []string
}

// Exec records the command and writes it to Out.
func (d *DryRunExecutor) Exec(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	line := FormatCommand(name, args...)

	d.mu.Lock()
	d.commands = append(d.commands, line)
	d.mu.Unlock()

	if d.Out != nil {
		fmt.Fprintln(d.Out, line)
	}
	return nil, nil, ErrDryRun
}

// Commands returns every command seen so far.
func (d *DryRunExecutor) Commands() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.commands))
	copy(out, d.commands)
	return out
}

// FormatCommand renders a command the way it would be typed in a shell.
func FormatCommand(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, shellQuote(name))
	for _, arg := range args {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`;&|<>()*?[]#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
