package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newTestRoot writes a config using the file backend under a temp dir and
// builds a fresh root command against it.
func newTestRoot(t *testing.T, dir string) (func(args ...string) (string, error), string) {
	t.Helper()
	cfgPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		raw := strings.Join([]string{
			"config_format_version: \"1\"",
			"storage:",
			"  backend: file",
			"  path: " + filepath.Join(dir, "data"),
			"notifications:",
			"  enabled: true",
			"  message: Time to wind down for bed",
			"logging:",
			"  level: error",
		}, "\n")
		if err := os.WriteFile(cfgPath, []byte(raw), 0o600); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}

	run := func(args ...string) (string, error) {
		root, err := NewRootCmd(context.Background(), Options{ConfigPath: cfgPath})
		if err != nil {
			t.Fatalf("NewRootCmd() error = %v", err)
		}
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs(args)
		err = root.Execute()
		return out.String(), err
	}
	return run, cfgPath
}

func TestCalcPrintsTimes(t *testing.T) {
	run, _ := newTestRoot(t, t.TempDir())

	out, err := run("calc", "--wake", "06:30", "--duration", "8", "--wind-down", "30")
	if err != nil {
		t.Fatalf("calc error = %v", err)
	}
	for _, want := range []string{"06:30 AM", "8 hours", "Start winding down at 10:00 PM", "10:30 PM"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCalcRejectsInvalidInput(t *testing.T) {
	run, _ := newTestRoot(t, t.TempDir())

	tests := [][]string{
		{"calc", "--duration", "11"},
		{"calc", "--duration", "7.1"},
		{"calc", "--wind-down", "20"},
		{"calc", "--wake", "25:00"},
	}
	for _, args := range tests {
		if _, err := run(args...); err == nil {
			t.Errorf("%v: expected error but got none", args)
		}
	}
}

func TestSaveReviewAndDelete(t *testing.T) {
	dir := t.TempDir()
	run, _ := newTestRoot(t, dir)

	out, err := run("calc", "--wake", "07:00", "--24h", "--save", "--technique", "breathing")
	if err != nil {
		t.Fatalf("calc --save error = %v", err)
	}
	if !strings.Contains(out, "Saved to history!") || !strings.Contains(out, "23:00") {
		t.Fatalf("unexpected calc output:\n%s", out)
	}

	out, err = run("plan", "show")
	if err != nil || !strings.Contains(out, "07:00") {
		t.Fatalf("plan show = %q, %v", out, err)
	}

	out, err = run("history", "list")
	if err != nil {
		t.Fatalf("history list error = %v", err)
	}
	id := strings.TrimSpace(strings.SplitN(out, "|", 2)[0])
	if id == "" || !strings.Contains(out, "breathing") {
		t.Fatalf("history list output:\n%s", out)
	}

	if _, err := run("history", "review", id, "--quality", "4"); err != nil {
		t.Fatalf("history review error = %v", err)
	}
	out, _ = run("history", "list")
	if !strings.Contains(out, "quality 4/5") {
		t.Errorf("review not applied:\n%s", out)
	}

	if _, err := run("history", "review", id, "--quality", "9"); err == nil {
		t.Error("review accepted quality 9")
	}
	if _, err := run("history", "review", "missing", "--quality", "3"); err == nil {
		t.Error("review of unknown id succeeded")
	}

	exportPath := filepath.Join(dir, "export.json")
	if _, err := run("history", "export", exportPath); err != nil {
		t.Fatalf("history export error = %v", err)
	}
	if _, err := os.Stat(exportPath); err != nil {
		t.Errorf("export file missing: %v", err)
	}

	if _, err := run("history", "delete", id); err != nil {
		t.Fatalf("history delete error = %v", err)
	}
	out, _ = run("history", "list")
	if !strings.Contains(out, "No history recorded yet.") {
		t.Errorf("history not empty after delete:\n%s", out)
	}
}

func TestRemindSetAndClear(t *testing.T) {
	run, _ := newTestRoot(t, t.TempDir())

	out, err := run("remind", "set", "21:45")
	if err != nil || !strings.Contains(out, "Next wind-down reminder") {
		t.Fatalf("remind set = %q, %v", out, err)
	}
	out, _ = run("remind", "list")
	if !strings.Contains(out, "Time to wind down for bed") {
		t.Errorf("remind list:\n%s", out)
	}

	if _, err := run("remind", "clear"); err != nil {
		t.Fatalf("remind clear error = %v", err)
	}
	out, _ = run("remind", "list")
	if !strings.Contains(out, "No pending reminders.") {
		t.Errorf("reminders left after clear:\n%s", out)
	}
}

func TestPrefsSet(t *testing.T) {
	run, _ := newTestRoot(t, t.TempDir())

	if _, err := run("prefs", "set", "--theme", "dark", "--default-duration", "7.5"); err != nil {
		t.Fatalf("prefs set error = %v", err)
	}
	out, err := run("prefs", "show")
	if err != nil {
		t.Fatalf("prefs show error = %v", err)
	}
	if !strings.Contains(out, "dark") || !strings.Contains(out, "7 hours 30 min") {
		t.Errorf("prefs show:\n%s", out)
	}
	if _, err := run("prefs", "set", "--theme", "sepia"); err == nil {
		t.Error("prefs set accepted an unknown theme")
	}
}

func TestConfigValidateAndVersion(t *testing.T) {
	run, _ := newTestRoot(t, t.TempDir())

	out, err := run("config", "validate")
	if err != nil || !strings.Contains(out, "Configuration valid") {
		t.Errorf("config validate = %q, %v", out, err)
	}
	if _, err := run("version"); err != nil {
		t.Errorf("version error = %v", err)
	}
}

func TestNewRootCmdInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("logging:\n  level: loud\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := NewRootCmd(context.Background(), Options{ConfigPath: cfgPath}); err == nil {
		t.Error("expected error but got none")
	}
}
