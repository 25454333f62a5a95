package launch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestLogScanner_Transitions(t *testing.T) {
	const (
		forge   = "[main/INFO] [FML]: MinecraftForge v14.23.5.2860 Initialized"
		modl    = "[main/INFO]: ModLauncher 9.1.3+9.1.3+main.9b69c82a starting: java version 17.0.2"
		sound   = "[Client thread/INFO]: Sound engine started"
		joined  = "[Client thread/INFO]: [CHAT] Steve entro a Oblivion!"
		left    = "[Client thread/INFO]: [CHAT] Steve salio de Oblivion!"
		other   = "[Client thread/INFO]: [CHAT] Alex entro a Oblivion!"
		wrapper = "Error: Could not find or load main class net.minecraft.launchwrapper.Launch"
		trapped = "Caused by: net.minecraftforge.fml.relauncher.FMLSecurityManager$ExitTrappedException"
	)

	tests := []struct {
		name   string
		lines  []string
		events []ScanEvent
		final  ScanState
	}{
		{"forge startup", []string{"noise", forge}, []ScanEvent{EventNone, EventLoaded}, ScanLoaded},
		{"modlauncher startup", []string{modl}, []ScanEvent{EventLoaded}, ScanLoaded},
		{"sound engine marker", []string{sound}, []ScanEvent{EventLoaded}, ScanLoaded},
		{"trailing whitespace", []string{forge + "\r\n"}, []ScanEvent{EventLoaded}, ScanLoaded},
		{"join before load ignored", []string{joined}, []ScanEvent{EventNone}, ScanLaunching},
		{"join and leave", []string{forge, joined, left}, []ScanEvent{EventLoaded, EventJoined, EventLeft}, ScanLoaded},
		{"other player", []string{forge, other}, []ScanEvent{EventLoaded, EventNone}, ScanLoaded},
		{"launchwrapper", []string{wrapper, forge}, []ScanEvent{EventLaunchWrapperMissing, EventNone}, ScanFailed},
		{"early crash", []string{trapped, forge}, []ScanEvent{EventEarlyCrash, EventNone}, ScanFailed},
		{"crash after load is not early", []string{forge, trapped}, []ScanEvent{EventLoaded, EventNone}, ScanLoaded},
	}

	for _, test := range tests {
		s := NewLogScanner("Steve")
		for i, line := range test.lines {
			if got := s.Feed(line); got != test.events[i] {
				t.Errorf("%s: line %d event = %d, expected %d", test.name, i, got, test.events[i])
			}
		}
		if s.State() != test.final {
			t.Errorf("%s: final state = %s, expected %s", test.name, s.State(), test.final)
		}
	}
}

func TestLogScanner_CrashIsTerminal(t *testing.T) {
	s := NewLogScanner("Steve")
	s.Feed("[main/INFO] [FML]: MinecraftForge v14.23.5.2860 Initialized")
	s.Feed("[Client thread/INFO]: [CHAT] Steve entro a Oblivion!")

	if ev := s.CrashReport(); ev != EventCrashed {
		t.Fatalf("Expected crash event, got %d", ev)
	}
	if ev := s.CrashReport(); ev != EventNone {
		t.Errorf("Expected a single crash event, got %d", ev)
	}
	if ev := s.Feed("[Client thread/INFO]: [CHAT] Steve entro a Oblivion!"); ev != EventNone {
		t.Errorf("Expected no join after crash, got %d", ev)
	}
	if !s.State().Terminal() {
		t.Error("Expected terminal state")
	}

	failed := NewLogScanner("Steve")
	failed.Feed("Error: Could not find or load main class net.minecraft.launchwrapper.Launch")
	if ev := failed.CrashReport(); ev != EventNone {
		t.Errorf("Expected no crash event after failure, got %d", ev)
	}
}

func TestLogScanner_NameIsQuoted(t *testing.T) {
	s := NewLogScanner("a.b")
	s.Feed("[x]: Sound engine started")
	if ev := s.Feed("[x]: [CHAT] aXb entro a Oblivion!"); ev != EventNone {
		t.Error("Expected display name to match literally")
	}
	if ev := s.Feed("[x]: [CHAT] a.b entro a Oblivion!"); ev != EventJoined {
		t.Error("Expected join for the literal name")
	}
}

func TestWatchCrashReports(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "crash-reports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	// Present before the watch starts
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crash-old.txt"), nil, 0o644))

	var mu sync.Mutex
	var seen []string
	w, err := WatchCrashReports(dir, func(path string) {
		mu.Lock()
		seen = append(seen, filepath.Base(path))
		mu.Unlock()
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.log"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crash-2024-05-14_18.30.00-client.txt"), nil, 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1
	}, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, w.Close())

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"crash-2024-05-14_18.30.00-client.txt"}, seen)
}

func TestWatchCrashReports_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "instances", "srv", "crash-reports")
	w, err := WatchCrashReports(dir, func(string) {}, nil)
	require.NoError(t, err)
	require.DirExists(t, dir)
	require.NoError(t, w.Close())

	var nilWatcher *CrashWatcher
	require.NoError(t, nilWatcher.Close())
}
