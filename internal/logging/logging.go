package logging

import (
	"io"
	"log"
	"os"
	"sync"
)

// Two channels: ops carries breakcheck's own messages, tool carries raw
// output lines from the external load generator, tagged by target URL so
// interleaved runs stay attributable.
var (
	mu   sync.Mutex
	ops  = log.New(os.Stdout, "", log.LstdFlags)
	tool = log.New(os.Stdout, "", log.LstdFlags)
)

// SetOutput redirects both channels. Meant for startup and tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	ops.SetOutput(w)
	tool.SetOutput(w)
}

func Info(format string, v ...interface{}) {
	ops.Printf("[INFO] "+format, v...)
}

func Warn(format string, v ...interface{}) {
	ops.Printf("[WARN] "+format, v...)
}

func Error(format string, v ...interface{}) {
	ops.Printf("[ERROR] "+format, v...)
}

// Tool forwards one line of external tool output under the given URL tag.
func Tool(url, line string) {
	tool.Printf("[%s] %s", url, line)
}
