package status

import (
	"context"
	"errors"
	"os/exec"
	"testing"
)

func TestExecRunnerMissingBinary(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), "hoststatus-no-such-binary")
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("Run() error = %v, want ErrSourceUnavailable", err)
	}
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}

	_, err := ExecRunner{}.Run(context.Background(), "false")
	if !errors.Is(err, ErrProcessExecution) {
		t.Errorf("Run() error = %v, want ErrProcessExecution", err)
	}
}

func TestExecRunnerOutput(t *testing.T) {
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skip("echo not available")
	}

	// arguments are passed through verbatim, never through a shell
	out, err := ExecRunner{}.Run(context.Background(), "echo", "a;", "$(id)")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if out != "a; $(id)\n" {
		t.Errorf("Run() = %q", out)
	}
}

func TestScanLines(t *testing.T) {
	lines := scanLines("a b\r\n\nsingle\n  c\td  \n")
	if len(lines) != 2 {
		t.Fatalf("len = %d, want 2", len(lines))
	}
	if lines[0].num != 1 || lines[1].num != 4 {
		t.Errorf("line numbers = %d, %d", lines[0].num, lines[1].num)
	}
	if lines[1].text != "c\td" || len(lines[1].fields) != 2 {
		t.Errorf("line 4 = %+v", lines[1])
	}
}
