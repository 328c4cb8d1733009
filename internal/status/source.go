package status

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Runner executes a program with an explicit argument vector and returns
// its standard output. No shell is involved.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%w: exit status %d: %s", ErrProcessExecution, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}

		return "", fmt.Errorf("%w: %v", ErrProcessExecution, err)
	}

	return normalizeNewlines(stdout.String()), nil
}

func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// readProc reads a file under the collector's proc root, bounded by the
// collector timeout.
func (c *Collector) readProc(ctx context.Context, name string) (string, error) {
	path := filepath.Join(c.procRoot, name)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	type result struct {
		data []byte
		err  error
	}

	ch := make(chan result, 1)
	go func() {
		data, err := os.ReadFile(path)
		ch <- result{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", &SourceError{Source: path, Err: ctx.Err()}

	case r := <-ch:
		if r.err != nil {
			if errors.Is(r.err, fs.ErrNotExist) || errors.Is(r.err, fs.ErrPermission) {
				return "", &SourceError{Source: path, Err: fmt.Errorf("%w: %v", ErrSourceUnavailable, r.err)}
			}
			return "", &SourceError{Source: path, Err: r.err}
		}
		return string(r.data), nil
	}
}

func (c *Collector) runCommand(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.runner.Run(ctx, name, args...)
	if err != nil {
		return "", &SourceError{Source: name, Err: err}
	}

	return out, nil
}
