package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const subDir = "break_check"

// StatRecord is one row of the external tool's final summary, one per
// logical endpoint observed during a run.
type StatRecord struct {
	Endpoint            string  `json:"endpoint"`
	Method              string  `json:"method"`
	Requests            int64   `json:"requests"`
	Failures            int64   `json:"failures"`
	MedianResponseTime  float64 `json:"median_response_time"`
	AverageResponseTime float64 `json:"average_response_time"`
	MinResponseTime     float64 `json:"min_response_time"`
	MaxResponseTime     float64 `json:"max_response_time"`
}

// Report aggregates a single completed run against one target URL. Written
// once, never mutated after write.
type Report struct {
	TargetURL           string       `json:"target_url"`
	TotalRequests       int64        `json:"total_requests"`
	TotalFailures       int64        `json:"total_failures"`
	AverageResponseTime float64      `json:"average_response_time"`
	MedianResponseTime  float64      `json:"median_response_time"`
	MinResponseTime     float64      `json:"min_response_time"`
	MaxResponseTime     float64      `json:"max_response_time"`
	Stats               []StatRecord `json:"stats"`
	Timestamp           string       `json:"timestamp"`
	TestDuration        float64      `json:"test_duration"`
}

// SanitizeURL turns a target URL into a filesystem-safe stem: scheme
// stripped, path separators and dots flattened to underscores. The result
// is deterministic so a re-run against the same URL overwrites its file.
func SanitizeURL(url string) string {
	s := strings.ReplaceAll(url, "https://", "")
	s = strings.ReplaceAll(s, "http://", "")
	s = strings.ReplaceAll(s, "/", "_")
	return strings.ReplaceAll(s, ".", "_")
}

// Path returns the report file location for a target URL under baseDir.
func Path(baseDir, url string) string {
	return filepath.Join(baseDir, subDir, SanitizeURL(url)+".json")
}

// Write persists the report as pretty-printed JSON and returns the path it
// was written to. The timestamp is stamped here if the caller left it empty.
func Write(baseDir string, rep Report) (string, error) {
	if rep.Timestamp == "" {
		rep.Timestamp = time.Now().Format(time.RFC3339)
	}
	if rep.Stats == nil {
		rep.Stats = []StatRecord{}
	}

	dir := filepath.Join(baseDir, subDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	data, err := json.MarshalIndent(rep, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	path := filepath.Join(dir, SanitizeURL(rep.TargetURL)+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
