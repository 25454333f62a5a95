package launch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/farfania/oblivion-launcher/internal/model"
)

func TestWithConsole(t *testing.T) {
	inner := &fakeGame{crashDir: t.TempDir()}
	enabled := false
	opened := 0
	var mirrored []string

	runner := WithConsole(inner, func() bool { return enabled }, func() { opened++ }, func(l string) {
		mirrored = append(mirrored, l)
	})
	s := model.NewSession(&model.Server{ID: "main"}, nil, "java")

	var seen []string
	onLine := func(l string) { seen = append(seen, l) }

	_, err := runner.Start(s, onLine)
	require.NoError(t, err)
	inner.line("quiet")
	require.Equal(t, 0, opened)
	require.Empty(t, mirrored)

	enabled = true
	_, err = runner.Start(s, onLine)
	require.NoError(t, err)
	inner.line("loud")
	require.Equal(t, 1, opened)
	require.Equal(t, []string{"loud"}, mirrored)
	require.Equal(t, []string{"quiet", "loud"}, seen)

	// The wrapped runner still answers path queries
	require.Equal(t, inner.crashDir, runner.CrashReportsDir("main"))
}
