package runner

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"
	"time"
)

// The single-endpoint user behavior handed to locust: constant-zero wait,
// GET against the host. Matches the break-check profile of hammering one
// endpoint as hard as the user count allows.
//
//go:embed locustfile.py
var embeddedLocustfile []byte

// materializeLocustfile writes the embedded locustfile to a temp file and
// returns its path. The caller removes it when the batch is done.
func materializeLocustfile() (string, error) {
	f, err := os.CreateTemp("", "breakcheck-locustfile-*.py")
	if err != nil {
		return "", fmt.Errorf("create locustfile: %w", err)
	}
	if _, err := f.Write(embeddedLocustfile); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write locustfile: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close locustfile: %w", err)
	}
	return f.Name(), nil
}

// buildCmd constructs a headless, summary-only locust invocation scoped to
// exactly one target URL. Context cancellation sends SIGTERM rather than
// the default SIGKILL so locust can still print its summary; WaitDelay
// bounds how long a stuck child can hold up teardown.
func (o *Orchestrator) buildCmd(ctx context.Context, url string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, o.cfg.LocustBin,
		"-f", o.locustfile,
		"--headless",
		"-u", strconv.Itoa(o.cfg.Users),
		"-r", strconv.Itoa(o.cfg.SpawnRate),
		"--run-time", o.cfg.RunTime,
		"--only-summary",
		"--host", url,
	)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = 10 * time.Second
	return cmd
}
