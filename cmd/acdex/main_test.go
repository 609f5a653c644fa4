package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kailas-cloud/acdex/internal/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Execute(append([]string{"--env", "test"}, args...), &stdout, &stderr)
	return stdout.String(), err
}

func TestSearch_Text(t *testing.T) {
	out, err := run(t, "search", "b744[1sf]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"B747-400", "matched by", "shortname", "speed, fuel", "(base "} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSearch_ByName(t *testing.T) {
	out, err := run(t, "search", "--json", "name:b747-400")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"matched_by": "name"`) {
		t.Errorf("output:\n%s", out)
	}
}

func TestSearch_JSON(t *testing.T) {
	out, err := run(t, "search", "--json", "id:1[2]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Base struct {
			ShortName string `json:"short_name"`
			Priority  int    `json:"priority"`
		} `json:"base"`
		MatchedBy string   `json:"matched_by"`
		Modifiers []string `json:"modifiers"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if resp.Base.ShortName != "b744" || resp.Base.Priority != 2 || resp.MatchedBy != "id" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestSearch_NotFoundSuggests(t *testing.T) {
	out, err := run(t, "search", "b7440")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if !strings.Contains(out, "did you mean:") || !strings.Contains(out, "b744") {
		t.Errorf("output:\n%s", out)
	}
}

func TestSearch_Errors(t *testing.T) {
	tests := []struct {
		args []string
		want error
	}{
		{[]string{"search", "id:70000"}, domain.ErrInvalidID},
		{[]string{"search", "b744[sq]"}, domain.ErrInvalidModifier},
		{[]string{"search", "b744[7]"}, domain.ErrInvalidEngineVariant},
		{[]string{"suggest", "zzzz"}, domain.ErrNoSuggestion},
	}
	for _, tt := range tests {
		if _, err := run(t, tt.args...); !errors.Is(err, tt.want) {
			t.Errorf("%v: err = %v, want %v", tt.args, err, tt.want)
		}
	}

	if _, err := run(t, "search"); err == nil {
		t.Error("expected error without a query")
	}
}

func TestSuggest(t *testing.T) {
	out, err := run(t, "suggest", "B747-4000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) == 0 || len(lines) > 5 {
		t.Fatalf("got %d lines, want 1..5:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "b744") || !strings.Contains(lines[0], "id:1") {
		t.Errorf("top line = %q", lines[0])
	}
}

func TestExport_ThenSearchFromFile(t *testing.T) {
	for _, ext := range []string{".yaml", ".json", ".msgpack", ".msgpack.zst"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "fleet"+ext)
			out, err := run(t, "export", "--out", path)
			if err != nil {
				t.Fatalf("export: %v", err)
			}
			if !strings.Contains(out, "wrote 57 records") {
				t.Errorf("export output = %q", out)
			}

			out, err = run(t, "--catalog", path, "search", "--json", "b744[1]")
			if err != nil {
				t.Fatalf("search from %s: %v", ext, err)
			}
			if !strings.Contains(out, `"engine": 1`) {
				t.Errorf("output:\n%s", out)
			}
		})
	}
}

func TestExport_Errors(t *testing.T) {
	if _, err := run(t, "export"); err == nil {
		t.Error("expected error without --out")
	}
	if _, err := run(t, "export", "--out", filepath.Join(t.TempDir(), "fleet.csv")); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestSeed_RequiresDatabase(t *testing.T) {
	_, err := run(t, "seed")
	if err == nil || !strings.Contains(err.Error(), "database.addrs") {
		t.Errorf("err = %v", err)
	}
}

func TestConfigErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := Execute([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "search", "b744"}, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Errorf("err = %v", err)
	}

	if _, err := run(t, "--catalog", filepath.Join(t.TempDir(), "missing.yaml"), "search", "b744"); err == nil {
		t.Error("expected error for missing catalog file")
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "--version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "commit") {
		t.Errorf("version output = %q", out)
	}
}

func TestRunMain_ExitCode(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := -1
	runMain([]string{"acdex", "--env", "test", "search", "nosuchplane"}, &stdout, &stderr, func(c int) { code = c })
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "error:") {
		t.Errorf("stderr = %q", stderr.String())
	}

	code = -1
	runMain([]string{"acdex", "--env", "test", "search", "b744"}, &stdout, &stderr, func(c int) { code = c })
	if code != -1 {
		t.Errorf("exit called with %d on success", code)
	}
}
