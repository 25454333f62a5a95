package model

import "fmt"

// LaunchState represents the current phase of a launch session
type LaunchState string

const (
	// LaunchStateIdle means no launch is in flight
	LaunchStateIdle LaunchState = "Idle"

	// LaunchStateJavaCheck means the Java runtime is being validated or scanned for
	LaunchStateJavaCheck LaunchState = "JavaCheck"

	// LaunchStateJavaInstall means a managed Java runtime is being downloaded
	LaunchStateJavaInstall LaunchState = "JavaInstall"

	// LaunchStateDistroValidate means the distribution index and server files are being validated
	LaunchStateDistroValidate LaunchState = "DistroValidate"

	// LaunchStateAssetDownload means game files are being downloaded
	LaunchStateAssetDownload LaunchState = "AssetDownload"

	// LaunchStateExtract means downloaded libraries are being extracted
	LaunchStateExtract LaunchState = "Extract"

	// LaunchStateLaunching means the game process was spawned and is starting up
	LaunchStateLaunching LaunchState = "Launching"

	// LaunchStateRunning means the game reported a completed startup
	LaunchStateRunning LaunchState = "Running"

	// LaunchStateClosed means the game process exited
	LaunchStateClosed LaunchState = "Closed"

	// LaunchStateCrashed means a crash was detected for the game process
	LaunchStateCrashed LaunchState = "Crashed"

	// LaunchStateFailed means the launch was aborted before or during startup
	LaunchStateFailed LaunchState = "Failed"
)

// transitions lists the states reachable from each state.
var transitions = map[LaunchState][]LaunchState{
	LaunchStateIdle:           {LaunchStateJavaCheck, LaunchStateDistroValidate},
	LaunchStateJavaCheck:      {LaunchStateJavaInstall, LaunchStateDistroValidate, LaunchStateFailed, LaunchStateIdle},
	LaunchStateJavaInstall:    {LaunchStateExtract, LaunchStateDistroValidate, LaunchStateFailed, LaunchStateIdle},
	LaunchStateDistroValidate: {LaunchStateAssetDownload, LaunchStateExtract, LaunchStateLaunching, LaunchStateFailed, LaunchStateIdle},
	LaunchStateAssetDownload:  {LaunchStateExtract, LaunchStateLaunching, LaunchStateFailed, LaunchStateIdle},
	LaunchStateExtract:        {LaunchStateAssetDownload, LaunchStateDistroValidate, LaunchStateLaunching, LaunchStateFailed, LaunchStateIdle},
	LaunchStateLaunching:      {LaunchStateRunning, LaunchStateClosed, LaunchStateCrashed, LaunchStateFailed},
	LaunchStateRunning:        {LaunchStateClosed, LaunchStateCrashed},
	LaunchStateCrashed:        {LaunchStateClosed},
}

// String returns the string representation of LaunchState
func (s LaunchState) String() string {
	return string(s)
}

// IsActive returns true while a launch is in flight, i.e. until the
// game closed, crashed or the launch failed
func (s LaunchState) IsActive() bool {
	switch s {
	case LaunchStateJavaCheck, LaunchStateJavaInstall, LaunchStateDistroValidate,
		LaunchStateAssetDownload, LaunchStateExtract, LaunchStateLaunching, LaunchStateRunning:
		return true
	}
	return false
}

// IsLaunching returns true while the orchestration has not handed over to
// a started game yet
func (s LaunchState) IsLaunching() bool {
	return s.IsActive() && s != LaunchStateRunning
}

// IsFinished returns true if the session reached a terminal state
func (s LaunchState) IsFinished() bool {
	return s == LaunchStateClosed || s == LaunchStateFailed
}

// CanTransition reports whether moving from s to next is allowed
func (s LaunchState) CanTransition(next LaunchState) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition returns next if the move is allowed, otherwise s and an error
func (s LaunchState) Transition(next LaunchState) (LaunchState, error) {
	if !s.CanTransition(next) {
		return s, fmt.Errorf("can't change from state %s to %s", s, next)
	}
	return next, nil
}

// StatusColor is the traffic-light value reported by status services
type StatusColor string

const (
	StatusGreen  StatusColor = "green"
	StatusYellow StatusColor = "yellow"
	StatusRed    StatusColor = "red"
	StatusGrey   StatusColor = "grey"
)

// Hex returns the display colour for a status value. Unknown values map to grey.
func (c StatusColor) Hex() string {
	switch c {
	case StatusGreen:
		return "#a5c325"
	case StatusYellow:
		return "#eac918"
	case StatusRed:
		return "#c32625"
	default:
		return "#848484"
	}
}

// ServiceStatus is the status of a single remote service
type ServiceStatus struct {
	Name      string      `json:"name"`
	Status    StatusColor `json:"status"`
	Essential bool        `json:"essential"`
}

// ServerStatus is the result of pinging a game server
type ServerStatus struct {
	Name          string `json:"name"`
	Online        bool   `json:"online"`
	OnlinePlayers int    `json:"onlinePlayers"`
	MaxPlayers    int    `json:"maxPlayers"`
	Version       string `json:"version,omitempty"`
	MOTD          string `json:"motd,omitempty"`
}

// Color maps the server ping result onto a status colour
func (s ServerStatus) Color() StatusColor {
	if s.Online {
		return StatusGreen
	}
	return StatusRed
}

// PlayersText returns "online/max" or the offline label
func (s ServerStatus) PlayersText(offline string) string {
	if !s.Online {
		return offline
	}
	return fmt.Sprintf("%d/%d", s.OnlinePlayers, s.MaxPlayers)
}
