package runner

// Defaults mirror the break-test profile: a large user count spawned all at
// once for a short, fixed window.
const (
	DefaultUsers     = 1000
	DefaultSpawnRate = 1000
	DefaultRunTime   = "30"
	DefaultOutDir    = "performance_tests"
	DefaultLocustBin = "locust"
)

// Config describes one orchestrator invocation. Immutable once handed to
// New; the URL list is de-duplicated at run time, not here.
type Config struct {
	URLs      []string
	Users     int
	SpawnRate int
	RunTime   string // seconds, or a locust duration like "90s"/"2m"

	OutDir     string // report base dir, <OutDir>/break_check/<url>.json
	LocustBin  string // external tool executable
	LocustFile string // custom locustfile; empty uses the embedded one
}

// Normalized returns a copy with defaults filled in, for callers that need
// to show or record the effective parameters.
func (c Config) Normalized() Config {
	c.normalize()
	return c
}

func (c *Config) normalize() {
	if c.Users <= 0 {
		c.Users = DefaultUsers
	}
	if c.SpawnRate <= 0 {
		c.SpawnRate = DefaultSpawnRate
	}
	if c.RunTime == "" {
		c.RunTime = DefaultRunTime
	}
	if c.OutDir == "" {
		c.OutDir = DefaultOutDir
	}
	if c.LocustBin == "" {
		c.LocustBin = DefaultLocustBin
	}
}

// RunResult is the terminal state of one per-URL run. Err is informational:
// it has already been logged and never propagates further.
type RunResult struct {
	TargetURL  string
	ReportPath string
	Err        error
}

func dedupURLs(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
