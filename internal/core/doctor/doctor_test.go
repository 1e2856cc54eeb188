package doctor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/touchgate/internal/core/config"
)

func statuses(r Result) map[string]Status {
	out := make(map[string]Status, len(r.Items))
	for _, item := range r.Items {
		out[item.Label] = item.Status
	}
	return out
}

func TestSummary(t *testing.T) {
	results := []Result{
		{Items: []CheckItem{{Status: StatusPass}, {Status: StatusWarn}}},
		{Items: []CheckItem{{Status: StatusFail}, {Status: StatusPass}}},
	}

	passed, warned, failed := Summary(results)
	assert.Equal(t, 2, passed)
	assert.Equal(t, 1, warned)
	assert.Equal(t, 1, failed)
}

func TestResult_Worst(t *testing.T) {
	assert.Equal(t, StatusPass, Result{}.Worst())

	r := Result{Items: []CheckItem{{Status: StatusWarn}, {Status: StatusPass}}}
	assert.Equal(t, StatusWarn, r.Worst())

	r.add("broken", StatusFail, "")
	r.add("fine", StatusWarn, "")
	assert.Equal(t, StatusFail, r.Worst())
}

type stubCheck struct{ runs *int }

func (s stubCheck) Name() string { return "stub" }

func (s stubCheck) Run(context.Context) Result {
	*s.runs++
	return Result{Name: "stub"}
}

func TestRunAll_StopsWhenCancelled(t *testing.T) {
	runs := 0
	checks := []Check{stubCheck{&runs}, stubCheck{&runs}}

	assert.Len(t, RunAll(context.Background(), checks), 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Empty(t, RunAll(ctx, checks))
	assert.Equal(t, 2, runs)
}

func TestConfigCheck_Defaults(t *testing.T) {
	cfg := config.DefaultConfig()
	result := NewConfigCheck(&cfg, filepath.Join(t.TempDir(), "missing.yaml")).Run(context.Background())

	got := statuses(result)
	assert.Equal(t, StatusPass, got["config file"])
	assert.Equal(t, StatusPass, got["validation"])
	assert.Contains(t, result.Items[0].Detail, "not found")
}

func TestConfigCheck_InvalidAndWarnings(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Hold.Threshold = 0
	cfg.Display.Width = 47

	result := NewConfigCheck(&cfg, "").Run(context.Background())

	got := statuses(result)
	assert.Equal(t, StatusFail, got["hold.threshold"])
	assert.Equal(t, StatusWarn, got["width"])
	assert.Equal(t, StatusWarn, got["tick_interval"])
}

func TestConfigCheck_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hold:\n  threshold: 2s\n"), 0o644))

	cfg := config.DefaultConfig()
	result := NewConfigCheck(&cfg, path).Run(context.Background())
	assert.Equal(t, path, result.Items[0].Detail)
}

func stubTerminal(t *testing.T, tty bool, termEnv string, w, h int) {
	t.Helper()
	origTTY, origSize, origEnv := isTerminalFunc, getSizeFunc, getenvFunc
	t.Cleanup(func() {
		isTerminalFunc, getSizeFunc, getenvFunc = origTTY, origSize, origEnv
	})

	isTerminalFunc = func(int) bool { return tty }
	getenvFunc = func(string) string { return termEnv }
	getSizeFunc = func(int) (int, int, error) {
		if w == 0 {
			return 0, 0, errors.New("not a terminal")
		}
		return w, h, nil
	}
}

func TestTerminalCheck_Interactive(t *testing.T) {
	stubTerminal(t, true, "xterm-256color", 120, 40)

	result := NewTerminalCheck(48, 16).Run(context.Background())

	got := statuses(result)
	assert.Equal(t, StatusPass, got["stdout"])
	assert.Equal(t, StatusPass, got["stdin"])
	assert.Equal(t, StatusPass, got["TERM"])
	assert.Equal(t, StatusPass, got["size"])
}

func TestTerminalCheck_Piped(t *testing.T) {
	stubTerminal(t, false, "dumb", 0, 0)

	result := NewTerminalCheck(48, 16).Run(context.Background())

	got := statuses(result)
	assert.Equal(t, StatusFail, got["stdout"])
	assert.Equal(t, StatusWarn, got["stdin"])
	assert.Equal(t, StatusWarn, got["TERM"])
	assert.NotContains(t, got, "size")
}

func TestTerminalCheck_TooSmall(t *testing.T) {
	stubTerminal(t, true, "xterm", 40, 10)

	result := NewTerminalCheck(48, 16).Run(context.Background())
	assert.Equal(t, StatusWarn, statuses(result)["size"])
}

func TestSelfTestCheck_Passes(t *testing.T) {
	cfg := config.DefaultConfig()
	result := NewSelfTestCheck(&cfg).Run(context.Background())

	require.Len(t, result.Items, 4)
	for _, item := range result.Items {
		assert.Equal(t, StatusPass, item.Status, "%s: %s", item.Label, item.Detail)
	}
}

func TestSelfTestCheck_Layouts(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display.Width = 80
	cfg.Display.BarHeight = 5
	cfg.Hold.Threshold = 300 * time.Millisecond

	result := NewSelfTestCheck(&cfg).Run(context.Background())
	for _, item := range result.Items {
		assert.Equal(t, StatusPass, item.Status, "%s: %s", item.Label, item.Detail)
	}
}

func TestHistoryCheck(t *testing.T) {
	result := NewHistoryCheck(false, "").Run(context.Background())
	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, "disabled", result.Items[0].Detail)

	dir := t.TempDir()
	result = NewHistoryCheck(true, dir).Run(context.Background())
	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Contains(t, result.Items[0].Detail, "0 outcomes")
}

func TestHistoryCheck_Unwritable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	result := NewHistoryCheck(true, file).Run(context.Background())
	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusFail, result.Items[0].Status)
}
