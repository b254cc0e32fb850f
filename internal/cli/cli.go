package cli

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"breakcheck/internal/logging"
	"breakcheck/internal/runner"
	"breakcheck/internal/storage"
	"breakcheck/internal/styles"
)

// Start drives one full break-test batch to completion. It is the terminal
// error boundary: invalid input, operator interruption, and orchestration
// failures all end here as log lines, never as a propagated error.
func Start(cfg runner.Config) {
	if len(cfg.URLs) == 0 {
		logging.Error("No URLs provided")
		return
	}

	printHeader(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	o := runner.New(cfg)
	start := time.Now()
	results := o.RunConcurrentTests(ctx)

	if ctx.Err() != nil {
		logging.Info("Tests interrupted by user")
	} else {
		logging.Info("Load tests completed successfully")
	}

	printSummary(results, time.Since(start))
	saveHistory(cfg, results)
}

// RunBreakTest is the programmatic entry point: the default break profile
// (1000 users, spawn rate 1000) against urls for runTime seconds. Pass a
// non-positive runTime to use the default of 30.
func RunBreakTest(urls []string, runTime int) {
	cfg := runner.Config{URLs: urls}
	if runTime > 0 {
		cfg.RunTime = strconv.Itoa(runTime)
	}
	Start(cfg)
}

func printHeader(cfg runner.Config) {
	c := cfg.Normalized()

	fmt.Println()
	fmt.Println(styles.Title.Render("🔨 BREAKCHECK"))
	fmt.Println("======================================================================")
	fmt.Printf("Targets    : %d URL(s)\n", len(cfg.URLs))
	fmt.Printf("Users      : %d (spawn rate %d/s)\n", c.Users, c.SpawnRate)
	fmt.Printf("Run time   : %s\n", c.RunTime)
	fmt.Printf("Reports    : %s/break_check/\n", c.OutDir)
	fmt.Println("======================================================================")
	fmt.Println()
}

func printSummary(results []runner.RunResult, elapsed time.Duration) {
	fmt.Println()
	fmt.Println(styles.Title.Render("📊 BREAK TEST RESULTS"))
	fmt.Println("======================================================================")
	fmt.Printf("Total Duration : %s\n", elapsed.Round(time.Second))
	for _, res := range results {
		status := styles.Success.Render("ok    ")
		detail := res.ReportPath
		if res.Err != nil {
			status = styles.Error.Render("failed")
			detail = res.Err.Error()
			if res.ReportPath != "" {
				detail = res.ReportPath + " (" + res.Err.Error() + ")"
			}
		}
		fmt.Printf("  %s  %s  %s\n", status, res.TargetURL, styles.Subtle.Render(detail))
	}
	fmt.Println("======================================================================")
}

// saveHistory records each per-URL outcome in the session store. History is
// best-effort: a broken store must not fail the batch.
func saveHistory(cfg runner.Config, results []runner.RunResult) {
	store, err := storage.OpenDefault()
	if err != nil {
		logging.Warn("History store unavailable: %v", err)
		return
	}
	defer store.Close()

	c := cfg.Normalized()
	for _, res := range results {
		rec := storage.NewRunRecord(res.TargetURL, c.Users, c.SpawnRate, c.RunTime)
		rec.ReportPath = res.ReportPath
		rec.OK = res.Err == nil
		if err := store.Save(rec); err != nil {
			logging.Warn("Cannot record run for %s: %v", res.TargetURL, err)
		}
	}
}
