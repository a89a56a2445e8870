package hooks

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func writeHooksFile(t *testing.T, dir, content string) {
	t.Helper()
	d := filepath.Join(dir, ConfigDirName)
	if err := os.MkdirAll(d, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", ConfigDirName, err)
	}
	if err := os.WriteFile(filepath.Join(d, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write hooks.yaml: %v", err)
	}
}

func skipOnWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hook commands use sh syntax")
	}
}

func TestExportContextToEnv(t *testing.T) {
	ts := time.Date(2026, 5, 5, 12, 0, 0, 0, time.UTC)
	env := ExportContext{
		ExportPath:   "/tmp/marx.md",
		ExportFormat: "markdown",
		SectionCount: 7,
		Title:        "KARL MARX",
		Timestamp:    ts,
	}.ToEnv()

	want := map[string]bool{
		"FOLIO_EXPORT_PATH=/tmp/marx.md":       true,
		"FOLIO_EXPORT_FORMAT=markdown":         true,
		"FOLIO_SECTION_COUNT=7":                true,
		"FOLIO_TITLE=KARL MARX":                true,
		"FOLIO_TIMESTAMP=2026-05-05T12:00:00Z": true,
	}
	if len(env) != len(want) {
		t.Fatalf("got %d vars, want %d", len(env), len(want))
	}
	for _, kv := range env {
		if !want[kv] {
			t.Errorf("unexpected env entry %q", kv)
		}
	}
}

func TestLoaderNoConfig(t *testing.T) {
	l := NewLoader(WithProjectDir(t.TempDir()))
	if err := l.Load(); err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if l.HasHooks() {
		t.Error("expected no hooks")
	}
}

func TestLoaderDefaults(t *testing.T) {
	dir := t.TempDir()
	writeHooksFile(t, dir, `
hooks:
  pre-export:
    - command: echo pre
  post-export:
    - name: publish
      command: echo post
      timeout: 5
    - command: "   "
    - command: echo odd
      on_error: maybe
`)
	l := NewLoader(WithProjectDir(dir))
	if err := l.Load(); err != nil {
		t.Fatal(err)
	}

	pre := l.GetHooks(PreExport)
	if len(pre) != 1 || pre[0].Name != "pre-export-1" || pre[0].OnError != OnErrorFail || pre[0].Timeout != DefaultTimeout {
		t.Errorf("pre-export defaults not applied: %+v", pre)
	}
	post := l.GetHooks(PostExport)
	if len(post) != 2 {
		t.Fatalf("empty command should be skipped, got %d hooks", len(post))
	}
	if post[0].OnError != OnErrorContinue || post[0].Timeout != 5*time.Second {
		t.Errorf("post-export defaults not applied: %+v", post[0])
	}
	if post[1].OnError != OnErrorFail {
		t.Errorf("unknown on_error should fall back to fail, got %q", post[1].OnError)
	}
	if len(l.Warnings()) != 2 {
		t.Errorf("warnings = %v", l.Warnings())
	}
	if l.GetHooks("during-export") != nil {
		t.Error("unknown phase should return nil")
	}
}

func TestLoaderInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeHooksFile(t, dir, "hooks: [oops")
	if err := NewLoader(WithProjectDir(dir)).Load(); err == nil {
		t.Error("expected parse error")
	}

	writeHooksFile(t, dir, "hooks:\n  pre-export:\n    - command: echo\n      timeout: soon\n")
	if err := NewLoader(WithProjectDir(dir)).Load(); err == nil {
		t.Error("expected invalid timeout error")
	}
}

func TestExecutorEnvironment(t *testing.T) {
	skipOnWindows(t)
	t.Setenv("HOOK_TEST_VAR", "expanded")
	cfg := &Config{Hooks: HooksByPhase{PreExport: []Hook{{
		Name:    "env",
		Command: "echo $FOLIO_EXPORT_FORMAT $FOLIO_SECTION_COUNT $CUSTOM",
		Timeout: 5 * time.Second,
		OnError: OnErrorFail,
		Env:     map[string]string{"CUSTOM": "${HOOK_TEST_VAR}"},
	}}}}

	e := NewExecutor(cfg, ExportContext{ExportFormat: "html", SectionCount: 7})
	if err := e.RunPreExport(); err != nil {
		t.Fatalf("RunPreExport: %v", err)
	}
	if got := e.Results()[0].Stdout; got != "html 7 expanded" {
		t.Errorf("stdout = %q", got)
	}
}

func TestExecutorPreExportStopsOnFail(t *testing.T) {
	skipOnWindows(t)
	cfg := &Config{Hooks: HooksByPhase{PreExport: []Hook{
		{Name: "soft", Command: "exit 3", Timeout: time.Second, OnError: OnErrorContinue},
		{Name: "hard", Command: "exit 1", Timeout: time.Second, OnError: OnErrorFail},
		{Name: "never", Command: "echo no", Timeout: time.Second, OnError: OnErrorFail},
	}}}

	e := NewExecutor(cfg, ExportContext{})
	err := e.RunPreExport()
	if err == nil || !strings.Contains(err.Error(), `"hard"`) {
		t.Fatalf("expected hard failure, got %v", err)
	}
	if n := len(e.Results()); n != 2 {
		t.Errorf("hooks after a fail should not run, got %d results", n)
	}
}

func TestExecutorPostExportRunsAll(t *testing.T) {
	skipOnWindows(t)
	cfg := &Config{Hooks: HooksByPhase{PostExport: []Hook{
		{Name: "fail", Command: "exit 1", Timeout: time.Second, OnError: OnErrorFail},
		{Name: "ok", Command: "echo ok", Timeout: time.Second, OnError: OnErrorContinue},
	}}}

	e := NewExecutor(cfg, ExportContext{})
	if err := e.RunPostExport(); err == nil {
		t.Error("expected error from fail policy")
	}
	res := e.Results()
	if len(res) != 2 || !res[1].Success {
		t.Errorf("every post-export hook should run, got %+v", res)
	}
}

func TestExecutorTimeout(t *testing.T) {
	skipOnWindows(t)
	cfg := &Config{Hooks: HooksByPhase{PreExport: []Hook{
		{Name: "slow", Command: "sleep 5", Timeout: 100 * time.Millisecond, OnError: OnErrorFail},
	}}}

	e := NewExecutor(cfg, ExportContext{})
	start := time.Now()
	if err := e.RunPreExport(); err == nil {
		t.Fatal("expected timeout error")
	}
	if time.Since(start) > 3*time.Second {
		t.Error("timeout not enforced")
	}
	if !strings.Contains(e.Results()[0].Error.Error(), "timed out") {
		t.Errorf("error = %v", e.Results()[0].Error)
	}
}

func TestExecutorSummary(t *testing.T) {
	skipOnWindows(t)
	cfg := &Config{Hooks: HooksByPhase{
		PreExport:  []Hook{{Name: "ok", Command: "echo ok", Timeout: time.Second, OnError: OnErrorContinue}},
		PostExport: []Hook{{Name: "noisy", Command: "printf '%0300d' 0 1>&2; exit 1", Timeout: time.Second, OnError: OnErrorContinue}},
	}}

	e := NewExecutor(cfg, ExportContext{})
	if e.Summary() != "" {
		t.Error("summary before any run should be empty")
	}
	_ = e.RunPreExport()
	_ = e.RunPostExport()

	summary := e.Summary()
	if !strings.Contains(summary, "1 succeeded") || !strings.Contains(summary, "1 failed") {
		t.Errorf("summary counts missing: %s", summary)
	}
	for _, line := range strings.Split(summary, "\n") {
		if strings.Contains(line, "stderr:") && len(line) > 230 {
			t.Errorf("stderr line not truncated (%d bytes)", len(line))
		}
	}
	if !strings.Contains(summary, "...") {
		t.Error("expected ellipsis for truncated stderr")
	}
}

func TestRunHooks(t *testing.T) {
	dir := t.TempDir()
	if e, err := RunHooks(dir, ExportContext{}, false); err != nil || e != nil {
		t.Errorf("no hooks file: exec=%v err=%v", e, err)
	}

	writeHooksFile(t, dir, "hooks:\n  post-export:\n    - command: echo done\n")
	if e, err := RunHooks(dir, ExportContext{}, true); err != nil || e != nil {
		t.Errorf("noHooks should short-circuit: exec=%v err=%v", e, err)
	}
	e, err := RunHooks(dir, ExportContext{}, false)
	if err != nil || e == nil {
		t.Fatalf("expected executor, got exec=%v err=%v", e, err)
	}
	if len(e.Results()) != 0 {
		t.Error("nothing should run before RunPre/PostExport")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("abcdefghijklmnopqrstuvwxyz", 8); got != "abcde..." {
		t.Errorf("got %q", got)
	}
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	got := truncate(strings.Repeat("ü", 300), maxSummaryOutput)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate split a rune: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != maxSummaryOutput {
		t.Errorf("got %d runes, want %d", n, maxSummaryOutput)
	}
	if got := truncate("Kapital – Band I", 10); got != "Kapital..." {
		t.Errorf("got %q", got)
	}
}
