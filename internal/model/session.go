package model

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"

	"github.com/farfania/oblivion-launcher/internal/jsonx"
)

// SessionIDPrefix prefixes generated launch session identifiers
const SessionIDPrefix = "launch-"

// DefaultServerPort is used when a server address carries no port
const DefaultServerPort = 25565

// Account is the authenticated user selected in the launcher
type Account struct {
	UUID        string `json:"uuid"`
	DisplayName string `json:"displayName"`
	Username    string `json:"username"`
	AccessToken string `json:"accessToken,omitempty"`
}

// Server is a single entry of the distribution index
type Server struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Address          string `json:"address"`
	MinecraftVersion string `json:"minecraftVersion"`
	ServerCode       string `json:"serverCode,omitempty"`
	MainServer       bool   `json:"mainServer"`
}

// HostPort splits the server address into host and port, defaulting the port
func (s *Server) HostPort() (string, int, error) {
	addr := strings.TrimSpace(s.Address)
	if addr == "" {
		return "", 0, fmt.Errorf("server %s has no address", s.ID)
	}
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		// No port in the address
		return addr, DefaultServerPort, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return "", 0, fmt.Errorf("invalid port in server address %q", s.Address)
	}
	return host, port, nil
}

// RequiresCode reports whether the server is restricted to holders of a server code
func (s *Server) RequiresCode() bool {
	return s.ServerCode != ""
}

// RequiredJavaMajor returns the Java major version the server's game version needs.
// Unparseable versions (snapshots) assume the newest requirement.
func (s *Server) RequiredJavaMajor() int {
	v, err := semver.NewVersion(s.MinecraftVersion)
	if err != nil {
		return 21
	}
	for _, req := range javaRequirements {
		if req.constraint.Check(v) {
			return req.major
		}
	}
	return 8
}

type javaRequirement struct {
	constraint *semver.Constraints
	major      int
}

var javaRequirements = []javaRequirement{
	{mustConstraint(">= 1.20.5"), 21},
	{mustConstraint(">= 1.18"), 17},
	{mustConstraint(">= 1.17"), 16},
}

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraint
}

// DiscordMeta holds the presence metadata published by the distribution
type DiscordMeta struct {
	ClientID       string `json:"clientId"`
	SmallImageText string `json:"smallImageText"`
	SmallImageKey  string `json:"smallImageKey"`
}

// Distribution is the remote index describing the available servers
type Distribution struct {
	Version string       `json:"version"`
	RSS     string       `json:"rss"`
	Discord *DiscordMeta `json:"discord,omitempty"`
	Servers []*Server    `json:"servers"`
}

// GetServer returns the server with the given ID or nil
func (d *Distribution) GetServer(id string) *Server {
	if d == nil {
		return nil
	}
	for _, s := range d.Servers {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// MainServer returns the server flagged as main, or the first server
func (d *Distribution) MainServer() *Server {
	if d == nil || len(d.Servers) == 0 {
		return nil
	}
	for _, s := range d.Servers {
		if s.MainServer {
			return s
		}
	}
	return d.Servers[0]
}

// ValidationResult is the outcome of a full server validation by the worker
type ValidationResult struct {
	ForgeData   jsonx.RawMessage `json:"forgeData"`
	VersionData jsonx.RawMessage `json:"versionData"`
	Error       jsonx.RawMessage `json:"error,omitempty"`
}

// Complete reports whether both forge and version metadata are present
func (r *ValidationResult) Complete() bool {
	return isPresent(r.ForgeData) && isPresent(r.VersionData)
}

func isPresent(raw jsonx.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed != "" && trimmed != "null"
}

// Session is the transient state of a single launch
type Session struct {
	ID             string
	Server         *Server
	Account        *Account
	JavaExecutable string
	VersionData    jsonx.RawMessage
	ForgeData      jsonx.RawMessage
	State          LaunchState
	LastError      string
	StartedAt      time.Time
	GameStartedAt  time.Time
	FinishedAt     time.Time
}

// NewSession creates a session in the idle state
func NewSession(server *Server, account *Account, javaExe string) *Session {
	return &Session{
		ID:             generateSessionID(),
		Server:         server,
		Account:        account,
		JavaExecutable: javaExe,
		State:          LaunchStateIdle,
		StartedAt:      time.Now(),
	}
}

// SetState moves the session to next if the transition is allowed
func (s *Session) SetState(next LaunchState) error {
	state, err := s.State.Transition(next)
	if err != nil {
		return err
	}
	s.State = state
	if state.IsFinished() && s.FinishedAt.IsZero() {
		s.FinishedAt = time.Now()
	}
	return nil
}

// Fail moves the session to the failed state and records the reason
func (s *Session) Fail(reason string) {
	s.LastError = reason
	if err := s.SetState(LaunchStateFailed); err != nil {
		// Terminal anyway; keep the reason for reporting
		s.State = LaunchStateFailed
		if s.FinishedAt.IsZero() {
			s.FinishedAt = time.Now()
		}
	}
}

// PlayTime returns how long the game process has been up
func (s *Session) PlayTime() time.Duration {
	if s.GameStartedAt.IsZero() {
		return 0
	}
	if s.FinishedAt.IsZero() {
		return time.Since(s.GameStartedAt)
	}
	return s.FinishedAt.Sub(s.GameStartedAt)
}

// generateSessionID generates a unique, time ordered session ID using UUID v7
func generateSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(SessionIDPrefix+"%d", time.Now().UnixNano())
	}
	return SessionIDPrefix + id.String()
}
