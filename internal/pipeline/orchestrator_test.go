package pipeline

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danmuck/mactune/internal/artifact"
	"github.com/danmuck/mactune/internal/guard"
	"github.com/danmuck/mactune/internal/mode"
	"github.com/danmuck/mactune/internal/testutil/testlog"
)

func testOrchestrator(m mode.Mode, g guard.Checker, runner *fakeRunner, root string, out *bytes.Buffer) *Orchestrator {
	return &Orchestrator{
		Guard:      g,
		Controller: Controller{Mode: m, Runner: runner, Out: out, Log: zerolog.Nop()},
		Persister:  artifact.Persister{Mode: m, Root: root, Out: out, Log: zerolog.Nop()},
		Out:        out,
		Log:        zerolog.Nop(),
	}
}

func deniedGuard() guard.Checker {
	return guard.Host{
		Euid: func() int { return 501 },
		GOOS: func() string { return "darwin" },
	}
}

func wrongPlatformGuard() guard.Checker {
	return guard.Host{
		Euid: func() int { return 0 },
		GOOS: func() string { return "linux" },
	}
}

// Scenario: simulated mode on a legal host.
func TestDryRunProducesFullTranscriptAndNoSideEffects(t *testing.T) {
	testlog.Start(t)
	runner := &fakeRunner{}
	var out bytes.Buffer
	root := t.TempDir()

	orch := testOrchestrator(mode.Simulated, guard.Nop{}, runner, root, &out)
	require.NoError(t, orch.Run())

	transcript := out.String()
	lines := strings.Split(strings.TrimRight(transcript, "\n"), "\n")
	assert.Contains(t, lines[0], "mode=dry-run")
	assert.Contains(t, lines[len(lines)-1], "server tuning complete")
	assert.Contains(t, transcript, "DRY-RUN: Would write "+artifact.SysctlConfPath)
	assert.Contains(t, transcript, "DRY-RUN: Would write "+artifact.LimitMaxfilesPath)

	assert.Empty(t, runner.calls)
	_, err := os.Stat(filepath.Join(root, artifact.SysctlConfPath))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, artifact.LimitMaxfilesPath))
	assert.True(t, os.IsNotExist(err))
}

// Scenario: real mode, non-elevated caller.
func TestGuardRejectionRunsZeroActions(t *testing.T) {
	testlog.Start(t)
	runner := &fakeRunner{}
	var out bytes.Buffer

	orch := testOrchestrator(mode.Real, deniedGuard(), runner, t.TempDir(), &out)
	err := orch.Run()

	require.True(t, errors.Is(err, guard.ErrPermissionDenied))
	assert.Zero(t, out.Len(), "guard failure must precede all pipeline output")
	assert.Empty(t, runner.calls)
}

// Scenario: real mode, elevated caller, unsupported platform.
func TestPlatformRejectionRunsZeroActions(t *testing.T) {
	testlog.Start(t)
	runner := &fakeRunner{}
	var out bytes.Buffer

	orch := testOrchestrator(mode.Real, wrongPlatformGuard(), runner, t.TempDir(), &out)
	err := orch.Run()

	require.True(t, errors.Is(err, guard.ErrUnsupportedPlatform))
	assert.Zero(t, out.Len())
	assert.Empty(t, runner.calls)
}

func TestRealRunAppliesGroupsAndPersistsArtifacts(t *testing.T) {
	testlog.Start(t)
	runner := &fakeRunner{}
	var out bytes.Buffer
	root := t.TempDir()

	orch := testOrchestrator(mode.Real, guard.Nop{}, runner, root, &out)
	require.NoError(t, orch.Run())

	// First tuning action and last finish action both reached the host.
	assert.Contains(t, runner.calls, "mdutil -a -i off")
	assert.Contains(t, runner.calls, "killall SystemUIServer")
	assert.Equal(t, "killall SystemUIServer", runner.calls[len(runner.calls)-1],
		"UI refresh must run last")

	got, err := os.ReadFile(filepath.Join(root, artifact.SysctlConfPath))
	require.NoError(t, err)
	assert.Equal(t, artifact.SysctlConf(), got)
}

func TestArtifactFailureAbortsBeforeFinishGroups(t *testing.T) {
	testlog.Start(t)
	runner := &fakeRunner{}
	var out bytes.Buffer
	root := t.TempDir()
	// Occupy /etc with a file so artifact persistence fails.
	require.NoError(t, os.WriteFile(filepath.Join(root, "etc"), []byte("in the way"), 0o644))

	orch := testOrchestrator(mode.Real, guard.Nop{}, runner, root, &out)
	err := orch.Run()

	require.Error(t, err)
	assert.Contains(t, err.Error(), artifact.SysctlConfPath)
	// Tuning groups ran; the post-artifact groups must not have.
	assert.Contains(t, runner.calls, "mdutil -a -i off")
	for _, call := range runner.calls {
		assert.NotContains(t, call, "killall")
	}
	assert.NotContains(t, out.String(), "server tuning complete")
}

func TestRerunConvergesToTheSameCommandSequence(t *testing.T) {
	testlog.Start(t)
	first := &fakeRunner{}
	second := &fakeRunner{}
	root := t.TempDir()

	require.NoError(t, testOrchestrator(mode.Real, guard.Nop{}, first, root, &bytes.Buffer{}).Run())
	require.NoError(t, testOrchestrator(mode.Real, guard.Nop{}, second, root, &bytes.Buffer{}).Run())

	assert.Equal(t, first.calls, second.calls)

	got, err := os.ReadFile(filepath.Join(root, artifact.SysctlConfPath))
	require.NoError(t, err)
	assert.Equal(t, artifact.SysctlConf(), got)
}

func TestNewWiresTheLiveGuard(t *testing.T) {
	orch := New(mode.Simulated, &fakeRunner{}, "/", &bytes.Buffer{}, zerolog.Nop())
	_, ok := orch.Guard.(guard.Host)
	assert.True(t, ok, "live pipeline must gate on the host guard")
}
