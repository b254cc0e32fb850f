package report

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// failuresRe matches the "# fails" column, e.g. "3(0.30%)". It is the one
// token shape unique to the request summary table, which keeps the parser
// from picking up rows of the percentile table that follows it.
var failuresRe = regexp.MustCompile(`^(\d+)\((?:\d+(?:\.\d+)?)%\)$`)

// Collector accumulates the external tool's final summary table while its
// stdout is streamed, and shapes the Report once the process has exited.
// It is owned by a single runner goroutine and needs no locking.
type Collector struct {
	url     string
	records []StatRecord
	total   *StatRecord

	// Unix seconds, both defaulting to 0 when never observed. Their
	// difference is reported verbatim as test_duration, so degenerate
	// runs can legitimately yield a zero or negative value.
	startTime     float64
	lastRequestTS float64
}

func NewCollector(url string) *Collector {
	return &Collector{url: url}
}

// MarkStarted records the moment the subprocess was launched.
func (c *Collector) MarkStarted() {
	c.startTime = unixNow()
}

// Feed consumes one line of subprocess output. Lines that are not summary
// table rows are ignored.
func (c *Collector) Feed(line string) {
	fields := splitRow(line)

	switch {
	case len(fields) >= 9 && fields[0] == "Aggregated" && failuresRe.MatchString(fields[2]):
		rec := parseRow("Aggregated", "", fields[1], fields[2], fields[3:7])
		c.total = &rec
		if rec.Requests > 0 {
			c.lastRequestTS = unixNow()
		}
	case len(fields) >= 10 && failuresRe.MatchString(fields[3]):
		if _, err := strconv.ParseInt(fields[2], 10, 64); err != nil {
			return
		}
		rec := parseRow(fields[1], fields[0], fields[2], fields[3], fields[4:8])
		c.records = append(c.records, rec)
	}
}

// SawSummary reports whether an Aggregated row was observed, i.e. the tool
// reached its own completion hook before exiting.
func (c *Collector) SawSummary() bool {
	return c.total != nil
}

// Report assembles the final per-URL report from whatever was collected.
func (c *Collector) Report() Report {
	rep := Report{
		TargetURL:    c.url,
		Stats:        c.records,
		Timestamp:    time.Now().Format(time.RFC3339),
		TestDuration: c.lastRequestTS - c.startTime,
	}
	if c.total != nil {
		rep.TotalRequests = c.total.Requests
		rep.TotalFailures = c.total.Failures
		rep.AverageResponseTime = c.total.AverageResponseTime
		rep.MedianResponseTime = c.total.MedianResponseTime
		rep.MinResponseTime = c.total.MinResponseTime
		rep.MaxResponseTime = c.total.MaxResponseTime
	}
	return rep
}

// splitRow tokenizes a table row, dropping the column separators the tool
// prints between field groups.
func splitRow(line string) []string {
	raw := strings.Fields(line)
	fields := raw[:0]
	for _, f := range raw {
		if f != "|" {
			fields = append(fields, f)
		}
	}
	return fields
}

// parseRow shapes one table row. timing is [avg, min, max, med] in ms.
func parseRow(endpoint, method, reqs, fails string, timing []string) StatRecord {
	rec := StatRecord{Endpoint: endpoint, Method: method}
	rec.Requests, _ = strconv.ParseInt(reqs, 10, 64)
	if m := failuresRe.FindStringSubmatch(fails); m != nil {
		rec.Failures, _ = strconv.ParseInt(m[1], 10, 64)
	}
	rec.AverageResponseTime, _ = strconv.ParseFloat(timing[0], 64)
	rec.MinResponseTime, _ = strconv.ParseFloat(timing[1], 64)
	rec.MaxResponseTime, _ = strconv.ParseFloat(timing[2], 64)
	rec.MedianResponseTime, _ = strconv.ParseFloat(timing[3], 64)
	return rec
}

func unixNow() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
