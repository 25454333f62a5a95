package launch

import (
	"regexp"
	"strings"
	"sync"
)

// ScanState is the phase of a game session as seen through its log
type ScanState int

const (
	ScanLaunching ScanState = iota
	ScanLoaded
	ScanJoined
	ScanCrashed
	ScanFailed
)

func (s ScanState) String() string {
	switch s {
	case ScanLaunching:
		return "Launching"
	case ScanLoaded:
		return "Loaded"
	case ScanJoined:
		return "Joined"
	case ScanCrashed:
		return "Crashed"
	case ScanFailed:
		return "Failed"
	}
	return "Unknown"
}

// Terminal reports whether no further events can be produced
func (s ScanState) Terminal() bool {
	return s == ScanCrashed || s == ScanFailed
}

// ScanEvent is the reaction a log line or crash report calls for
type ScanEvent int

const (
	EventNone ScanEvent = iota
	EventLoaded
	EventJoined
	EventLeft
	EventLaunchWrapperMissing
	EventEarlyCrash
	EventCrashed
)

// Fixed game output markers
const (
	launchWrapperMissing = "Could not find or load main class net.minecraft.launchwrapper.Launch"
	exitTrapped          = "net.minecraftforge.fml.relauncher.FMLSecurityManager$ExitTrappedException"
)

var (
	gameLaunchPattern  = regexp.MustCompile(`^\[.+\]: (?:MinecraftForge .+ Initialized|ModLauncher .+ starting: .+)$`)
	soundEnginePattern = regexp.MustCompile(`\[.+\]: Sound engine started`)
)

// LogScanner turns game output into events. Joined and crash detection
// are mutually exclusive since both terminal states swallow everything.
type LogScanner struct {
	joined *regexp.Regexp
	left   *regexp.Regexp

	mu    sync.Mutex
	state ScanState
}

// NewLogScanner creates a scanner for the player displayName
func NewLogScanner(displayName string) *LogScanner {
	name := regexp.QuoteMeta(displayName)
	return &LogScanner{
		joined: regexp.MustCompile(`\[.+\]: \[CHAT\] ` + name + ` entro a Oblivion!`),
		left:   regexp.MustCompile(`\[.+\]: \[CHAT\] ` + name + ` salio de Oblivion!`),
		state:  ScanLaunching,
	}
}

// State returns the current state
func (s *LogScanner) State() ScanState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Feed consumes one output line
func (s *LogScanner) Feed(line string) ScanEvent {
	line = strings.TrimSpace(line)
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case ScanLaunching:
		switch {
		case strings.Contains(line, launchWrapperMissing):
			s.state = ScanFailed
			return EventLaunchWrapperMissing
		case strings.Contains(line, exitTrapped):
			s.state = ScanFailed
			return EventEarlyCrash
		case gameLaunchPattern.MatchString(line), soundEnginePattern.MatchString(line):
			s.state = ScanLoaded
			return EventLoaded
		}
	case ScanLoaded:
		if s.joined.MatchString(line) {
			s.state = ScanJoined
			return EventJoined
		}
	case ScanJoined:
		if s.left.MatchString(line) {
			s.state = ScanLoaded
			return EventLeft
		}
		if s.joined.MatchString(line) {
			return EventJoined
		}
	}
	return EventNone
}

// CrashReport records that a crash report appeared
func (s *LogScanner) CrashReport() ScanEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Terminal() {
		return EventNone
	}
	s.state = ScanCrashed
	return EventCrashed
}
