package report_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"breakcheck/internal/report"
)

func TestSanitizeURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://example.com", "example_com"},
		{"http://example.com", "example_com"},
		{"https://api.example.com/v1/health", "api_example_com_v1_health"},
		{"example.com", "example_com"},
		{"https://example.com/", "example_com_"},
	}
	for _, c := range cases {
		if got := report.SanitizeURL(c.in); got != c.want {
			t.Errorf("SanitizeURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPath(t *testing.T) {
	got := report.Path("performance_tests", "https://example.com")
	want := filepath.Join("performance_tests", "break_check", "example_com.json")
	if got != want {
		t.Fatalf("Path = %q, want %q", got, want)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()

	rep := report.Report{
		TargetURL:           "https://example.com",
		TotalRequests:       120,
		TotalFailures:       6,
		AverageResponseTime: 45,
		MedianResponseTime:  38,
		MinResponseTime:     12,
		MaxResponseTime:     230,
		Stats: []report.StatRecord{
			{
				Endpoint:            "https://example.com",
				Method:              "GET",
				Requests:            120,
				Failures:            6,
				MedianResponseTime:  38,
				AverageResponseTime: 45,
				MinResponseTime:     12,
				MaxResponseTime:     230,
			},
		},
		Timestamp:    "2026-08-25T10:00:00Z",
		TestDuration: 30.2,
	}

	path, err := report.Write(dir, rep)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if path != filepath.Join(dir, "break_check", "example_com.json") {
		t.Fatalf("unexpected report path %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), "\n    \"target_url\"") {
		t.Error("report is not indented with 4 spaces")
	}

	var got report.Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("report does not round-trip: %v", err)
	}
	if !reflect.DeepEqual(got, rep) {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", got, rep)
	}

	var sum int64
	for _, s := range got.Stats {
		sum += s.Requests
	}
	if got.TotalRequests != sum {
		t.Errorf("total_requests %d != sum of stats requests %d", got.TotalRequests, sum)
	}
}

func TestWriteOverwritesSameURL(t *testing.T) {
	dir := t.TempDir()

	first := report.Report{TargetURL: "https://example.com", TotalRequests: 1}
	second := report.Report{TargetURL: "https://example.com", TotalRequests: 2}

	if _, err := report.Write(dir, first); err != nil {
		t.Fatalf("Write: %v", err)
	}
	path, err := report.Write(dir, second)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 report file, got %d", len(entries))
	}

	var got report.Report
	data, _ := os.ReadFile(path)
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.TotalRequests != 2 {
		t.Errorf("expected second write to win, got total_requests=%d", got.TotalRequests)
	}
}

func TestWriteStampsTimestamp(t *testing.T) {
	dir := t.TempDir()

	path, err := report.Write(dir, report.Report{TargetURL: "https://example.com"})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	var got report.Report
	data, _ := os.ReadFile(path)
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := time.Parse(time.RFC3339, got.Timestamp); err != nil {
		t.Errorf("timestamp %q is not ISO-8601: %v", got.Timestamp, err)
	}
	if got.Stats == nil {
		t.Error("stats should serialize as an empty array, not null")
	}
}
