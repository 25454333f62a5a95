package game

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestJavaProbe_Validate(t *testing.T) {
	probe := JavaProbe{}

	if probe.Validate(context.Background(), "") {
		t.Error("Expected empty path to be invalid")
	}
	if probe.Validate(context.Background(), filepath.Join(t.TempDir(), "java")) {
		t.Error("Expected missing executable to be invalid")
	}

	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture needs a unix shell")
	}
	fake := filepath.Join(t.TempDir(), "java")
	script := "#!/bin/sh\necho 'openjdk version \"17.0.2\" 2022-01-18' 1>&2\n"
	if err := os.WriteFile(fake, []byte(script), 0o755); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if !probe.Validate(context.Background(), fake) {
		t.Error("Expected fake java to be valid")
	}

	broken := filepath.Join(t.TempDir(), "java")
	if err := os.WriteFile(broken, []byte("#!/bin/sh\nexit 1\n"), 0o755); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if probe.Validate(context.Background(), broken) {
		t.Error("Expected failing java to be invalid")
	}
}
