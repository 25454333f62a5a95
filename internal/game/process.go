package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"
)

// maxLineSize bounds a single game output line
const maxLineSize = 1024 * 1024

// Process is a running game
type Process struct {
	cmd       *exec.Cmd
	logger    *zap.Logger
	startedAt time.Time

	done chan struct{}
	mu   sync.Mutex
	err  error
}

// Start runs cmd and hands every stdout and stderr line to onLine. onLine
// may be called from two goroutines at once.
func Start(cmd *exec.Cmd, onLine func(line string), logger *zap.Logger) (*Process, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	p := &Process{
		cmd:       cmd,
		logger:    logger,
		startedAt: time.Now(),
		done:      make(chan struct{}),
	}
	logger.Info("game started", zap.Int("pid", cmd.Process.Pid))

	var readers sync.WaitGroup
	readers.Add(2)
	go func() {
		defer readers.Done()
		p.scan(stdout, "stdout", onLine)
	}()
	go func() {
		defer readers.Done()
		p.scan(stderr, "stderr", onLine)
	}()

	go func() {
		readers.Wait()
		err := cmd.Wait()
		p.mu.Lock()
		p.err = err
		p.mu.Unlock()
		logger.Info("game exited", zap.Int("code", p.ExitCode()), zap.Duration("uptime", time.Since(p.startedAt)))
		close(p.done)
	}()

	return p, nil
}

func (p *Process) scan(r io.Reader, stream string, onLine func(string)) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		p.logger.Debug(line, zap.String("stream", stream))
		if onLine != nil {
			onLine(line)
		}
	}
}

// Kill terminates the game
func (p *Process) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

// Done is closed once the game exited and its output was drained
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Err returns the exit error once Done is closed
func (p *Process) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// ExitCode returns the exit code once Done is closed, -1 if unknown
func (p *Process) ExitCode() int {
	if p.cmd.ProcessState == nil {
		return -1
	}
	return p.cmd.ProcessState.ExitCode()
}

// StartedAt returns when the process was spawned
func (p *Process) StartedAt() time.Time {
	return p.startedAt
}
