package core

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"wineconfig/platform"
)

const DefaultCommandTimeout = 10 * time.Second

// CommandRunner executes external programs on behalf of the discovery code.
type CommandRunner interface {
	LookPath(file string) (string, error)
	Output(ctx context.Context, name string, arg ...string) ([]byte, error)
}

type ExecRunner struct {
	Timeout time.Duration
}

func MakeExecRunner() *ExecRunner {
	return &ExecRunner{Timeout: DefaultCommandTimeout}
}

func (r *ExecRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (r *ExecRunner) Output(ctx context.Context, name string, arg ...string) ([]byte, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := makeCommand(ctx, name, arg...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

func makeCommand(ctx context.Context, cmdString string, arg ...string) *exec.Cmd {
	Logger.Debug("Running command", "cmd", cmdString, "args", arg)

	cmd := exec.CommandContext(ctx, cmdString, arg...)
	platform.StripWindow(cmd)
	return cmd
}

// firstLine returns the first line of a command's output, trimmed.
func firstLine(out []byte) string {
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line)
}

// splitLines returns the non-empty lines of a command's output.
func splitLines(out []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
