package game

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/farfania/oblivion-launcher/internal/platform"
)

// DefaultProbeTimeout bounds a java -version run
const DefaultProbeTimeout = 10 * time.Second

// JavaProbe checks that a Java executable runs
type JavaProbe struct {
	Timeout time.Duration
}

// Validate reports whether path exists and answers -version. The version
// banner is written to stderr by every JVM.
func (p JavaProbe) Validate(ctx context.Context, path string) bool {
	if path == "" || !platform.PathExists(path) {
		return false
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "-version").CombinedOutput()
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(out)), "version")
}
