package worker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// Environment passed to every forked worker
const (
	EnvConfigDirectPath = "CONFIG_DIRECT_PATH"
)

// Channel selects where the worker writes protocol messages
type Channel int

const (
	// ChannelFD3 reads messages from an extra pipe mapped to fd 3 in the child
	ChannelFD3 Channel = iota
	// ChannelStdout reads messages from stdout; lines that are not protocol
	// messages are logged as output
	ChannelStdout
)

// DefaultChannel returns the message channel supported on this OS
func DefaultChannel() Channel {
	if runtime.GOOS == "windows" {
		return ChannelStdout
	}
	return ChannelFD3
}

// messageBuffer bounds undelivered messages before the reader blocks
const messageBuffer = 64

// Config describes how to start the worker executable
type Config struct {
	Command     string
	Args        []string // prepended to the role arguments
	Env         []string // appended to the launcher environment
	Dir         string
	LauncherDir string // exported as CONFIG_DIRECT_PATH
	Channel     Channel
	Logger      *zap.Logger
}

// Process is a running worker
type Process struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	enc    *Encoder
	logger *zap.Logger

	messages     chan Message
	disconnected chan struct{}
	disconnect   sync.Once
	done         chan struct{}

	mu      sync.Mutex
	exitErr error
}

// Fork starts the worker with role arguments such as "JavaGuard 1.20.1"
func Fork(ctx context.Context, cfg Config, role ...string) (*Process, error) {
	if cfg.Command == "" {
		return nil, errors.New("worker command is not configured")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	args := append(append([]string{}, cfg.Args...), role...)
	cmd := exec.CommandContext(ctx, cfg.Command, args...)
	cmd.Dir = cfg.Dir
	cmd.Env = append(os.Environ(), cfg.Env...)
	if cfg.LauncherDir != "" {
		cmd.Env = append(cmd.Env, EnvConfigDirectPath+"="+cfg.LauncherDir)
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	var msgReader, msgWriter *os.File
	if cfg.Channel == ChannelFD3 {
		msgReader, msgWriter, err = os.Pipe()
		if err != nil {
			return nil, fmt.Errorf("failed to create message pipe: %w", err)
		}
		cmd.ExtraFiles = []*os.File{msgWriter}
	}

	if err := cmd.Start(); err != nil {
		if msgReader != nil {
			msgReader.Close()
			msgWriter.Close()
		}
		return nil, fmt.Errorf("failed to start worker: %w", err)
	}
	if msgWriter != nil {
		// The child holds its own copy
		msgWriter.Close()
	}

	p := &Process{
		cmd:          cmd,
		stdin:        stdin,
		enc:          NewEncoder(stdin),
		logger:       logger,
		messages:     make(chan Message, messageBuffer),
		disconnected: make(chan struct{}),
		done:         make(chan struct{}),
	}

	logger.Debug("worker started",
		zap.Int("pid", cmd.Process.Pid),
		zap.Strings("args", args))

	var readers sync.WaitGroup
	readers.Add(2)
	go func() {
		defer readers.Done()
		p.logLines(stderr, "stderr")
	}()

	if cfg.Channel == ChannelFD3 {
		go func() {
			defer readers.Done()
			p.logLines(stdout, "stdout")
		}()
		readers.Add(1)
		go func() {
			defer readers.Done()
			defer msgReader.Close()
			p.readMessages(msgReader)
		}()
	} else {
		go func() {
			defer readers.Done()
			p.readMixed(stdout)
		}()
	}

	go func() {
		readers.Wait()
		close(p.messages)
		err := cmd.Wait()
		p.mu.Lock()
		p.exitErr = err
		p.mu.Unlock()
		if err != nil {
			logger.Debug("worker exited", zap.Error(err))
		} else {
			logger.Debug("worker exited")
		}
		close(p.done)
	}()

	return p, nil
}

// Send writes a command to the worker. After Disconnect it fails.
func (p *Process) Send(cmd Command) error {
	select {
	case <-p.disconnected:
		return errors.New("worker is disconnected")
	default:
	}
	if err := p.enc.Encode(cmd); err != nil {
		return fmt.Errorf("send %s %s%s: %w", cmd.Task, cmd.Function, cmd.Class, err)
	}
	return nil
}

// Messages returns the stream of decoded messages. It is closed when the
// worker closes its message channel.
func (p *Process) Messages() <-chan Message {
	return p.messages
}

// Disconnect closes the command channel and stops delivering messages.
// The worker is expected to exit once its stdin reaches EOF.
func (p *Process) Disconnect() {
	p.disconnect.Do(func() {
		close(p.disconnected)
		p.stdin.Close()
	})
}

// Kill terminates the worker
func (p *Process) Kill() error {
	p.Disconnect()
	if p.cmd.Process == nil {
		return nil
	}
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

// Done is closed once the worker exited and all output was drained
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Err returns the exit error after Done is closed; nil means exit code 0
func (p *Process) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exitErr
}

// ExitCode returns the exit code after Done is closed, -1 if unknown
func (p *Process) ExitCode() int {
	if p.cmd.ProcessState == nil {
		return -1
	}
	return p.cmd.ProcessState.ExitCode()
}

// PID returns the worker process ID
func (p *Process) PID() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

func (p *Process) deliver(msg Message) {
	select {
	case <-p.disconnected:
	case p.messages <- msg:
	}
}

func (p *Process) readMessages(r io.Reader) {
	dec := NewDecoder(r)
	for {
		msg, err := dec.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			if errors.Is(err, ErrMalformed) {
				p.logger.Warn("invalid worker message", zap.Error(err))
				continue
			}
			p.logger.Warn("worker message channel failed", zap.Error(err))
			return
		}
		p.deliver(msg)
	}
}

func (p *Process) readMixed(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), MaxLineSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) > 0 && line[0] == '{' {
			if msg, err := Decode(append([]byte(nil), line...)); err == nil {
				p.deliver(msg)
				continue
			}
		}
		p.logger.Info(string(line), zap.String("stream", "stdout"))
	}
}

func (p *Process) logLines(r io.Reader, stream string) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), MaxLineSize)
	for scanner.Scan() {
		p.logger.Info(scanner.Text(), zap.String("stream", stream))
	}
}
