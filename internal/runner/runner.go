package runner

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"
	"syscall"

	"breakcheck/internal/logging"
	"breakcheck/internal/report"
)

// Orchestrator fans a batch of target URLs out to one external load-test
// subprocess each and collects one report per unique URL.
type Orchestrator struct {
	cfg        Config
	locustfile string
}

func New(cfg Config) *Orchestrator {
	cfg.normalize()
	return &Orchestrator{cfg: cfg}
}

// RunConcurrentTests launches one runner goroutine per unique URL (first
// occurrence wins, order preserved) and waits for every one to reach a
// terminal state. A runner's failure never cancels or blocks its siblings;
// per-URL errors are logged inside the runner and surface only in the
// returned results.
func (o *Orchestrator) RunConcurrentTests(ctx context.Context) []RunResult {
	urls := dedupURLs(o.cfg.URLs)
	logging.Info("Starting concurrent tests for %d URLs", len(urls))

	results := make([]RunResult, len(urls))

	if o.cfg.LocustFile != "" {
		o.locustfile = o.cfg.LocustFile
	} else {
		path, err := materializeLocustfile()
		if err != nil {
			logging.Error("Cannot stage locustfile: %v", err)
			for i, url := range urls {
				results[i] = RunResult{TargetURL: url, Err: err}
			}
			return results
		}
		defer os.Remove(path)
		o.locustfile = path
	}

	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			results[i] = o.runSingle(ctx, url)
		}(i, url)
	}
	wg.Wait()

	return results
}

// runSingle owns the full lifecycle of one load-test subprocess: start it,
// stream its output line by line, wait for exit, and write the report the
// tool's summary amounts to. Nothing escapes this boundary; every failure
// is logged with the URL and folded into the result.
func (o *Orchestrator) runSingle(ctx context.Context, url string) (res RunResult) {
	res.TargetURL = url
	collector := report.NewCollector(url)

	cmd := o.buildCmd(ctx, url)

	// Merge stdout and stderr onto one pipe. The tool splits its chatter
	// across both streams, and reading just one would leave the other's
	// buffer to fill up and wedge the child.
	pr, pw, err := os.Pipe()
	if err != nil {
		logging.Error("Error testing %s: %v", url, err)
		res.Err = err
		return res
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		logging.Error("Error testing %s: %v", url, err)
		res.Err = err
		return res
	}
	pw.Close() // child holds the write end now
	defer pr.Close()
	collector.MarkStarted()

	// Whatever path leaves this function, a live child gets terminated
	// and reaped. Without this an early return would orphan the process.
	defer func() {
		if cmd.Process != nil && cmd.ProcessState == nil {
			cmd.Process.Signal(syscall.SIGTERM)
			cmd.Wait()
		}
	}()

	scanner := bufio.NewScanner(pr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		logging.Tool(url, line)
		collector.Feed(line)
	}
	// Scanner stops at EOF: the child closed its end of the pipe.

	waitErr := cmd.Wait()
	if waitErr != nil {
		logging.Error("Error testing %s: %v", url, waitErr)
		res.Err = waitErr
	}

	// The tool printing its final summary is the completion signal, the
	// analog of its in-process "test finished" hook. A clean exit without
	// a parseable summary still gets an empty report rather than none.
	if waitErr == nil || collector.SawSummary() {
		path, werr := report.Write(o.cfg.OutDir, collector.Report())
		if werr != nil {
			logging.Error("Error testing %s: %v", url, werr)
			if res.Err == nil {
				res.Err = werr
			}
			return res
		}
		res.ReportPath = path
		logging.Info("Test results saved to %s", path)
	}
	return res
}
