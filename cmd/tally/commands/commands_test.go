package commands

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tally/tasks/scoreboard"
)

func TestParsePresses(t *testing.T) {
	got, err := parsePresses([]string{"0:start", " 12 : increment"})
	if err != nil {
		t.Fatalf("parsePresses: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("events = %d, want 2", len(got))
	}
	if got[0].At != 0 || got[0].Key.Rune != scoreboard.Shortcuts[scoreboard.ActionStart] || !got[0].Key.Press {
		t.Fatalf("first = %+v", got[0].Key)
	}
	if got[1].At != 12 || got[1].Key.Rune != scoreboard.Shortcuts[scoreboard.ActionIncrement] {
		t.Fatalf("second = at %d %+v", got[1].At, got[1].Key)
	}
}

func TestParsePressesErrors(t *testing.T) {
	for _, arg := range []string{"start", "x:start", "-1:start", "3:jump"} {
		if _, err := parsePresses([]string{arg}); err == nil {
			t.Fatalf("parsePresses(%q) succeeded", arg)
		}
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestHeadlessVirtualScenario(t *testing.T) {
	out, logs, err := execute(t, "headless", "--virtual", "--hz", "10", "--ticks", "60",
		"--press", "0:start", "--press", "35:stop",
		"--press", "40:increment", "--press", "41:increment", "--press", "42:increment")
	if err != nil {
		t.Fatalf("headless: %v", err)
	}
	if strings.TrimSpace(out) != "score=3 elapsed=3 running=false" {
		t.Fatalf("output = %q", out)
	}
	if !strings.Contains(logs, "scoreboard: stop") {
		t.Fatalf("logs = %q", logs)
	}
}

func TestHeadlessIntervalAndScreenshot(t *testing.T) {
	shot := filepath.Join(t.TempDir(), "out.png")
	out, _, err := execute(t, "headless", "--virtual", "--hz", "10", "--ticks", "10",
		"--interval", "200ms", "--press", "0:start", "--screenshot", shot)
	if err != nil {
		t.Fatalf("headless: %v", err)
	}
	if !strings.Contains(out, "running=true") {
		t.Fatalf("output = %q", out)
	}
	f, err := os.Open(shot)
	if err != nil {
		t.Fatalf("open screenshot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode screenshot: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 320 {
		t.Fatalf("screenshot bounds = %v", b)
	}
}

func TestHeadlessRejectsBadPress(t *testing.T) {
	if _, _, err := execute(t, "headless", "--virtual", "--ticks", "1", "--press", "0:fly"); err == nil {
		t.Fatal("bad press accepted")
	}
}

func TestHeadlessVirtualNeedsTicks(t *testing.T) {
	if _, _, err := execute(t, "headless", "--virtual"); err == nil {
		t.Fatal("virtual run without tick limit succeeded")
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	if err := os.WriteFile(path, []byte("window:\n  scale: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, "--config", path, "version"); err == nil {
		t.Fatal("invalid config accepted")
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "tally ") {
		t.Fatalf("version output = %q", out)
	}
}

func TestHeadlessHelpShowsExamples(t *testing.T) {
	out, _, err := execute(t, "headless", "--help")
	if err != nil {
		t.Fatalf("headless --help: %v", err)
	}
	for _, want := range []string{"--press 0:start --press 300:stop", "--screenshot out.png"} {
		if !strings.Contains(out, want) {
			t.Fatalf("help missing %q:\n%s", want, out)
		}
	}
}
