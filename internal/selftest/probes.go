package selftest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/danmuck/mactune/internal/artifact"
	"github.com/danmuck/mactune/internal/catalog"
	"github.com/danmuck/mactune/internal/guard"
	"github.com/danmuck/mactune/internal/mode"
	"github.com/danmuck/mactune/internal/pipeline"
)

// recordingRunner captures every command instead of executing it. With fail
// set it rejects everything, modeling a host that refuses each tunable.
type recordingRunner struct {
	calls []string
	fail  bool
}

func (r *recordingRunner) Run(name string, args ...string) (string, error) {
	r.calls = append(r.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	if r.fail {
		return "", errors.New("operation rejected")
	}
	return "", nil
}

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// Suite returns the fixed probe list, one probe per action group or
// subsystem.
func Suite() []Probe {
	probes := []Probe{
		{Name: "mode.parse", Run: probeModeParse},
	}
	for _, g := range append(catalog.TuningGroups(), catalog.FinishGroups()...) {
		probes = append(probes, dryRunProbe(g))
	}
	probes = append(probes,
		Probe{Name: "real.dispatch", Run: probeRealDispatch},
		Probe{Name: "real.failsoft", Run: probeFailSoft},
		Probe{Name: "real.idempotent", Run: probeIdempotent},
		Probe{Name: "artifact.sysctl-render", Run: probeSysctlRender},
		Probe{Name: "artifact.plist-render", Run: probePlistRender},
		Probe{Name: "artifact.deterministic", Run: probeArtifactDeterminism},
		Probe{Name: "persist.dry-run-isolation", Run: probePersistDryRunIsolation},
		Probe{Name: "persist.real-write", Run: probePersistRealWrite},
		Probe{Name: "guard.nonroot", Run: probeGuardNonRoot},
		Probe{Name: "guard.platform", Run: probeGuardPlatform},
		Probe{Name: "guard.accepts", Run: probeGuardAccepts},
		Probe{Name: "pipeline.dry-run", Run: probePipelineDryRun},
		Probe{Name: "pipeline.guard-gate", Run: probePipelineGuardGate},
	)
	return probes
}

func probeModeParse() error {
	if got := mode.Parse("--dry-run"); got != mode.Simulated {
		return fmt.Errorf("--dry-run parsed as %s", got)
	}
	if got := mode.Parse(""); got != mode.Real {
		return fmt.Errorf("empty arg parsed as %s", got)
	}
	if got := mode.Parse("--dryrun"); got != mode.Real {
		return fmt.Errorf("malformed flag parsed as %s, want fail-open real", got)
	}
	return nil
}

// dryRunProbe asserts one group's simulated transcript carries the dry-run
// marker for every action and that no command reaches the runner.
func dryRunProbe(g catalog.Group) Probe {
	return Probe{
		Name: "dry-run." + g.Name,
		Run: func() error {
			runner := &recordingRunner{}
			var out bytes.Buffer
			ctrl := pipeline.Controller{Mode: mode.Simulated, Runner: runner, Out: &out, Log: nopLogger()}
			ctrl.ApplyGroup(g)
			for _, act := range g.Actions {
				want := "DRY-RUN: " + act.Description
				if !strings.Contains(out.String(), want) {
					return fmt.Errorf("missing %q in transcript", want)
				}
			}
			if len(runner.calls) != 0 {
				return fmt.Errorf("simulated group invoked %d commands", len(runner.calls))
			}
			return nil
		},
	}
}

func probeRealDispatch() error {
	runner := &recordingRunner{}
	var out bytes.Buffer
	ctrl := pipeline.Controller{Mode: mode.Real, Runner: runner, Out: &out, Log: nopLogger()}
	groups := catalog.TuningGroups()
	netparams := groups[len(groups)-1]
	ctrl.ApplyGroup(netparams)

	if len(runner.calls) != len(netparams.Actions) {
		return fmt.Errorf("dispatched %d commands, want %d", len(runner.calls), len(netparams.Actions))
	}
	want := "sysctl -w kern.ipc.somaxconn=2048"
	for _, call := range runner.calls {
		if call == want {
			return nil
		}
	}
	return fmt.Errorf("no %q among dispatched commands", want)
}

func probeFailSoft() error {
	runner := &recordingRunner{fail: true}
	var out bytes.Buffer
	ctrl := pipeline.Controller{Mode: mode.Real, Runner: runner, Out: &out, Log: nopLogger()}
	g := catalog.TuningGroups()[1] // animations: several independent actions
	ctrl.ApplyGroup(g)
	if len(runner.calls) != len(g.Actions) {
		return fmt.Errorf("pipeline stopped after %d of %d rejected actions", len(runner.calls), len(g.Actions))
	}
	if strings.Contains(out.String(), "rejected") {
		return errors.New("soft failure leaked into user transcript")
	}
	return nil
}

func probeIdempotent() error {
	first := &recordingRunner{}
	second := &recordingRunner{}
	var out bytes.Buffer
	g := catalog.TuningGroups()[0]
	pipeline.Controller{Mode: mode.Real, Runner: first, Out: &out, Log: nopLogger()}.ApplyGroup(g)
	pipeline.Controller{Mode: mode.Real, Runner: second, Out: &out, Log: nopLogger()}.ApplyGroup(g)
	pipeline.Controller{Mode: mode.Real, Runner: second, Out: &out, Log: nopLogger()}.ApplyGroup(g)
	if len(second.calls) != 2*len(first.calls) {
		return errors.New("re-applying a group changed its command sequence")
	}
	for i, call := range first.calls {
		if second.calls[i] != call || second.calls[i+len(first.calls)] != call {
			return fmt.Errorf("call %d diverged across applications", i)
		}
	}
	return nil
}

func probeSysctlRender() error {
	content := string(artifact.SysctlConf())
	for _, kv := range catalog.NetParams() {
		line := kv[0] + "=" + kv[1] + "\n"
		if !strings.Contains(content, line) {
			return fmt.Errorf("missing line %q", strings.TrimSpace(line))
		}
	}
	if n := strings.Count(content, "\n"); n != len(catalog.NetParams()) {
		return fmt.Errorf("rendered %d lines, want %d", n, len(catalog.NetParams()))
	}
	return nil
}

func probePlistRender() error {
	content := string(artifact.LimitMaxfilesPlist())
	for _, want := range []string{
		"<string>limit.maxfiles</string>",
		"<key>RunAtLoad</key>",
		"<true/>",
		"<key>ServiceIPC</key>",
		"<false/>",
	} {
		if !strings.Contains(content, want) {
			return fmt.Errorf("missing %q", want)
		}
	}
	if n := strings.Count(content, "<string>"+artifact.MaxFilesLimit+"</string>"); n != 2 {
		return fmt.Errorf("limit argument appears %d times, want soft and hard", n)
	}
	return nil
}

func probeArtifactDeterminism() error {
	if !bytes.Equal(artifact.SysctlConf(), artifact.SysctlConf()) {
		return errors.New("sysctl.conf render is not stable")
	}
	if !bytes.Equal(artifact.LimitMaxfilesPlist(), artifact.LimitMaxfilesPlist()) {
		return errors.New("limit.maxfiles.plist render is not stable")
	}
	return nil
}

func probePersistDryRunIsolation() error {
	root, err := os.MkdirTemp("", "mactune-selftest-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(root)

	var out bytes.Buffer
	p := artifact.Persister{Mode: mode.Simulated, Root: root, Out: &out, Log: nopLogger()}
	if err := p.PersistAll(); err != nil {
		return err
	}
	for _, dest := range []string{artifact.SysctlConfPath, artifact.LimitMaxfilesPath} {
		if !strings.Contains(out.String(), "Would write "+dest) {
			return fmt.Errorf("missing would-write line for %s", dest)
		}
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	if len(entries) != 0 {
		return fmt.Errorf("simulated persist touched the filesystem: %d entries", len(entries))
	}
	return nil
}

func probePersistRealWrite() error {
	root, err := os.MkdirTemp("", "mactune-selftest-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(root)

	var out bytes.Buffer
	p := artifact.Persister{Mode: mode.Real, Root: root, Out: &out, Log: nopLogger()}
	if err := p.PersistAll(); err != nil {
		return err
	}
	if err := p.PersistAll(); err != nil {
		return fmt.Errorf("second persist: %w", err)
	}
	sysctl, err := os.ReadFile(filepath.Join(root, artifact.SysctlConfPath))
	if err != nil {
		return err
	}
	if !bytes.Equal(sysctl, artifact.SysctlConf()) {
		return errors.New("persisted sysctl.conf diverges from render")
	}
	plist, err := os.ReadFile(filepath.Join(root, artifact.LimitMaxfilesPath))
	if err != nil {
		return err
	}
	if !bytes.Equal(plist, artifact.LimitMaxfilesPlist()) {
		return errors.New("persisted plist diverges from render")
	}
	return nil
}

func probeGuardNonRoot() error {
	g := guard.Host{
		Euid: func() int { return 501 },
		GOOS: func() string { return "darwin" },
	}
	if err := g.Verify(); !errors.Is(err, guard.ErrPermissionDenied) {
		return fmt.Errorf("got %v, want permission denied", err)
	}
	return nil
}

func probeGuardPlatform() error {
	g := guard.Host{
		Euid: func() int { return 0 },
		GOOS: func() string { return "linux" },
	}
	if err := g.Verify(); !errors.Is(err, guard.ErrUnsupportedPlatform) {
		return fmt.Errorf("got %v, want unsupported platform", err)
	}
	return nil
}

func probeGuardAccepts() error {
	g := guard.Host{
		Euid: func() int { return 0 },
		GOOS: func() string { return "darwin" },
	}
	if err := g.Verify(); err != nil {
		return fmt.Errorf("root on darwin rejected: %w", err)
	}
	return nil
}

// probePipelineDryRun exercises the full entry point with the guard swapped
// for a no-op, the only probe allowed to do so.
func probePipelineDryRun() error {
	root, err := os.MkdirTemp("", "mactune-selftest-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(root)

	runner := &recordingRunner{}
	var out bytes.Buffer
	orch := &pipeline.Orchestrator{
		Guard:      guard.Nop{},
		Controller: pipeline.Controller{Mode: mode.Simulated, Runner: runner, Out: &out, Log: nopLogger()},
		Persister:  artifact.Persister{Mode: mode.Simulated, Root: root, Out: &out, Log: nopLogger()},
		Out:        &out,
		Log:        nopLogger(),
	}
	if err := orch.Run(); err != nil {
		return err
	}

	transcript := out.String()
	lines := strings.Split(strings.TrimRight(transcript, "\n"), "\n")
	if len(lines) == 0 || !strings.Contains(lines[0], "mode=dry-run") {
		return errors.New("transcript does not open with the dry-run banner")
	}
	if !strings.Contains(lines[len(lines)-1], "server tuning complete") {
		return errors.New("transcript does not end with the completion line")
	}
	for _, dest := range []string{artifact.SysctlConfPath, artifact.LimitMaxfilesPath} {
		if !strings.Contains(transcript, "Would write "+dest) {
			return fmt.Errorf("missing would-write line for %s", dest)
		}
	}
	if len(runner.calls) != 0 {
		return fmt.Errorf("dry-run pipeline invoked %d commands", len(runner.calls))
	}
	return nil
}

func probePipelineGuardGate() error {
	runner := &recordingRunner{}
	var out bytes.Buffer
	orch := &pipeline.Orchestrator{
		Guard: guard.Host{
			Euid: func() int { return 501 },
			GOOS: func() string { return "darwin" },
		},
		Controller: pipeline.Controller{Mode: mode.Real, Runner: runner, Out: &out, Log: nopLogger()},
		Persister:  artifact.Persister{Mode: mode.Real, Root: "/nonexistent", Out: &out, Log: nopLogger()},
		Out:        &out,
		Log:        nopLogger(),
	}
	err := orch.Run()
	if !errors.Is(err, guard.ErrPermissionDenied) {
		return fmt.Errorf("got %v, want permission denied", err)
	}
	if out.Len() != 0 {
		return errors.New("guard failure still produced pipeline output")
	}
	if len(runner.calls) != 0 {
		return errors.New("guard failure still invoked commands")
	}
	return nil
}
