// Package game builds and runs the game process for a validated server.
package game

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/farfania/oblivion-launcher/internal/jsonx"
	"github.com/farfania/oblivion-launcher/internal/model"
)

// Directory layout below an instance and the common directory
const (
	NativesDirName     = "natives"
	LibrariesDirName   = "libraries"
	AssetsDirName      = "assets"
	CrashReportsDir    = "crash-reports"
	LogsDirName        = "logs"
	LatestLogName      = "latest.log"
	DefaultMainClass   = "net.minecraft.launchwrapper.Launch"
	DefaultMinRAMRatio = 2
)

// ErrMissingMetadata is returned when version or forge data is absent
var ErrMissingMetadata = errors.New("missing version or forge metadata")

// Metadata is the part of version and forge data the builder reads
type Metadata struct {
	ID            string `json:"id"`
	MainClass     string `json:"mainClass"`
	Assets        string `json:"assets"`
	MinecraftArgs string `json:"minecraftArguments"`
}

// Options configures command construction
type Options struct {
	JavaExecutable string
	CommonDir      string
	InstanceDir    string // per-server instances root
	MaxRAM         int    // megabytes
	ExtraJVMArgs   []string
}

// Builder turns a launch session into a game command
type Builder struct {
	opts Options
}

// NewBuilder creates a builder
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts}
}

// GameDir returns the working directory of server's instance
func (b *Builder) GameDir(serverID string) string {
	return filepath.Join(b.opts.InstanceDir, serverID)
}

// CrashReportsDir returns where the game writes crash reports
func (b *Builder) CrashReportsDir(serverID string) string {
	return filepath.Join(b.GameDir(serverID), CrashReportsDir)
}

// LatestLog returns the game's current log file
func (b *Builder) LatestLog(serverID string) string {
	return filepath.Join(b.GameDir(serverID), LogsDirName, LatestLogName)
}

// Args returns the java arguments for session
func (b *Builder) Args(s *model.Session) ([]string, error) {
	if s.Server == nil {
		return nil, errors.New("session has no server")
	}
	if s.Account == nil {
		return nil, errors.New("session has no account")
	}

	version, err := parseMetadata(s.VersionData)
	if err != nil {
		return nil, fmt.Errorf("version data: %w", err)
	}
	forge, err := parseMetadata(s.ForgeData)
	if err != nil {
		return nil, fmt.Errorf("forge data: %w", err)
	}

	mainClass := forge.MainClass
	if mainClass == "" {
		mainClass = version.MainClass
	}
	if mainClass == "" {
		mainClass = DefaultMainClass
	}

	gameDir := b.GameDir(s.Server.ID)
	maxRAM := b.opts.MaxRAM
	if maxRAM <= 0 {
		maxRAM = 4096
	}

	args := []string{
		"-Xmx" + strconv.Itoa(maxRAM) + "M",
		"-Xms" + strconv.Itoa(maxRAM/DefaultMinRAMRatio) + "M",
		"-Djava.library.path=" + filepath.Join(gameDir, NativesDirName),
	}
	args = append(args, b.opts.ExtraJVMArgs...)
	args = append(args,
		"-cp", classpath(b.opts.CommonDir),
		mainClass,
		"--username", s.Account.DisplayName,
		"--uuid", s.Account.UUID,
		"--accessToken", accessToken(s.Account),
		"--version", version.ID,
		"--gameDir", gameDir,
		"--assetsDir", filepath.Join(b.opts.CommonDir, AssetsDirName),
	)
	if version.Assets != "" {
		args = append(args, "--assetIndex", version.Assets)
	}
	if strings.Contains(forge.MinecraftArgs, "--tweakClass") {
		fields := strings.Fields(forge.MinecraftArgs)
		for i := 0; i < len(fields)-1; i++ {
			if fields[i] == "--tweakClass" {
				args = append(args, "--tweakClass", fields[i+1])
			}
		}
	}
	if host, port, err := s.Server.HostPort(); err == nil {
		args = append(args, "--server", host, "--port", strconv.Itoa(port))
	}
	return args, nil
}

// Build returns the command starting the game for session
func (b *Builder) Build(s *model.Session) (*exec.Cmd, error) {
	javaExe := s.JavaExecutable
	if javaExe == "" {
		javaExe = b.opts.JavaExecutable
	}
	if javaExe == "" {
		return nil, errors.New("no java executable configured")
	}
	args, err := b.Args(s)
	if err != nil {
		return nil, err
	}
	cmd := exec.Command(javaExe, args...)
	cmd.Dir = b.GameDir(s.Server.ID)
	return cmd, nil
}

func parseMetadata(raw jsonx.RawMessage) (Metadata, error) {
	var m Metadata
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return m, ErrMissingMetadata
	}
	if err := jsonx.Unmarshal(raw, &m); err != nil {
		return m, fmt.Errorf("invalid metadata: %w", err)
	}
	return m, nil
}

func classpath(commonDir string) string {
	sep := ":"
	if runtime.GOOS == "windows" {
		sep = ";"
	}
	libs := filepath.Join(commonDir, LibrariesDirName, "*")
	return strings.Join([]string{libs, filepath.Join(commonDir, "versions", "*")}, sep)
}

func accessToken(a *model.Account) string {
	if a.AccessToken == "" {
		return "0"
	}
	return a.AccessToken
}
