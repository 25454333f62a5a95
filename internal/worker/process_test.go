package worker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/farfania/oblivion-launcher/internal/jsonx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// TestHelperProcess is not a real test. It is re-executed by the tests
// below to act as a worker process.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	defer os.Exit(0)

	args := os.Args
	for len(args) > 0 {
		if args[0] == "--" {
			args = args[1:]
			break
		}
		args = args[1:]
	}

	var out io.Writer = os.Stdout
	if os.Getenv("HELPER_CHANNEL") != "stdout" {
		out = os.NewFile(3, "ipc")
	}
	send := func(msg Message) {
		data, _ := Encode(msg)
		fmt.Fprintf(out, "%s\n", data)
	}

	fmt.Println("worker online", strings.Join(args, " "))
	fmt.Fprintln(os.Stderr, "config", os.Getenv(EnvConfigDirectPath))

	switch os.Getenv("HELPER_SCRIPT") {
	case "exit":
		os.Exit(3)
	case "echo":
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			var cmd Command
			if err := jsonx.Unmarshal(scanner.Bytes(), &cmd); err != nil {
				fmt.Fprintln(os.Stderr, "bad command", err)
				continue
			}
			switch cmd.Function {
			case FuncValidateJava:
				send(ValidateJava{})
			case FuncProcessDlQueues:
				send(Progress{Data: DataDownload, Value: 1, Total: 2, Percent: 50})
				send(Complete{Data: DataDownload})
				send(Complete{Data: DataJava, Args: []string{"/runtime/bin/java"}})
			default:
				send(Unknown{Name: "echo:" + cmd.Task + cmd.Function + cmd.Class})
			}
		}
	}
}

func helperConfig(script string, channel Channel, logger *zap.Logger) Config {
	env := []string{"GO_WANT_HELPER_PROCESS=1", "HELPER_SCRIPT=" + script}
	if channel == ChannelStdout {
		env = append(env, "HELPER_CHANNEL=stdout")
	}
	return Config{
		Command:     os.Args[0],
		Args:        []string{"-test.run=TestHelperProcess", "--"},
		Env:         env,
		LauncherDir: "/tmp/oblivion-launcher",
		Channel:     channel,
		Logger:      logger,
	}
}

func receive(t *testing.T, p *Process) Message {
	t.Helper()
	select {
	case msg, ok := <-p.Messages():
		require.True(t, ok, "message channel closed")
		return msg
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for worker message")
		return nil
	}
}

func TestProcess_RequestResponse(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p, err := Fork(context.Background(), helperConfig("echo", ChannelFD3, zap.New(core)), RoleJavaGuard, "1.12.2")
	require.NoError(t, err)
	require.NotZero(t, p.PID())

	require.NoError(t, p.Send(Execute(FuncValidateJava, "/data")))
	msg := receive(t, p)
	vj, ok := msg.(ValidateJava)
	require.True(t, ok, "expected ValidateJava, got %#v", msg)
	require.Nil(t, vj.Result)

	require.NoError(t, p.Send(Execute(FuncProcessDlQueues, []DownloadQueue{{ID: "java", Limit: 1}})))
	require.IsType(t, Progress{}, receive(t, p))
	require.Equal(t, Complete{Data: DataDownload}, receive(t, p))
	last := receive(t, p).(Complete)
	require.Equal(t, []string{"/runtime/bin/java"}, last.Args)

	require.NoError(t, p.Send(ChangeContext(RoleAssetGuard, "/common", "")))
	require.Equal(t, "echo:changeContextAssetGuard", receive(t, p).Context())

	p.Disconnect()
	require.Error(t, p.Send(Execute(FuncValidateJava)))

	select {
	case <-p.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("worker did not exit after disconnect")
	}
	require.NoError(t, p.Err())
	require.Equal(t, 0, p.ExitCode())

	require.Eventually(t, func() bool {
		return logs.FilterMessage("worker online JavaGuard 1.12.2").Len() == 1 &&
			logs.FilterMessage("config /tmp/oblivion-launcher").Len() == 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestProcess_NonZeroExit(t *testing.T) {
	p, err := Fork(context.Background(), helperConfig("exit", ChannelFD3, zap.NewNop()), RoleAssetGuard, "/common", "/java")
	require.NoError(t, err)

	select {
	case <-p.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("worker did not exit")
	}

	var exitErr *exec.ExitError
	require.True(t, errors.As(p.Err(), &exitErr), "expected exit error, got %v", p.Err())
	require.Equal(t, 3, p.ExitCode())

	_, open := <-p.Messages()
	require.False(t, open)
}

func TestProcess_StdoutChannel(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p, err := Fork(context.Background(), helperConfig("echo", ChannelStdout, zap.New(core)), RoleJavaGuard, "1.20.1")
	require.NoError(t, err)
	defer p.Kill()

	require.NoError(t, p.Send(Execute(FuncValidateJava, "/data")))
	require.IsType(t, ValidateJava{}, receive(t, p))

	// Plain output lines are logged, not delivered
	require.Eventually(t, func() bool {
		return logs.FilterMessage("worker online JavaGuard 1.20.1").Len() == 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestFork_Errors(t *testing.T) {
	_, err := Fork(context.Background(), Config{})
	require.Error(t, err)

	_, err = Fork(context.Background(), Config{Command: "/nonexistent/worker-binary"})
	require.Error(t, err)
}
