package cli

import (
	"bytes"
	"errors"
	"github.com/MatthiasKunnen/xdg-open/dispatch"
	"github.com/MatthiasKunnen/xdg-open/mimemap"
	"github.com/MatthiasKunnen/xdg-open/mimetype"
	"github.com/MatthiasKunnen/xdg-open/sharedmimeinfo"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testApp struct {
	*App
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	execs  [][]string
}

func newTestApp(t *testing.T, config mimemap.Map) *testApp {
	t.Helper()

	ta := &testApp{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}

	logger := logrus.New()
	logger.SetOutput(ta.stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	ta.App = &App{
		Resolver: mimetype.NewResolver(mimetype.DefaultMatches()),
		Dispatcher: &dispatch.Dispatcher{
			LookPath: func(file string) (string, error) {
				return "/usr/bin/" + file, nil
			},
			Exec: func(argv0 string, argv []string, envv []string) error {
				ta.execs = append(ta.execs, argv)
				return nil
			},
		},
		LoadConfig: func() (mimemap.Map, error) {
			return config, nil
		},
		LoadHierarchy: func() (*sharedmimeinfo.Hierarchy, error) {
			return nil, errors.New("no hierarchy in tests")
		},
		Stdout: ta.stdout,
		Stderr: ta.stderr,
		Logger: logger,
	}

	return ta
}

func TestRunSingleTargetDispatches(t *testing.T) {
	ta := newTestApp(t, mimemap.Map{"text": {"html": "echo open"}})

	code := ta.Run([]string{"http://example.com"})
	if code != ExitReplaced {
		t.Errorf("code=%d; want %d", code, ExitReplaced)
	}

	want := [][]string{{"echo", "open", "http://example.com"}}
	if diff := cmp.Diff(want, ta.execs); diff != "" {
		t.Errorf("exec mismatch (-want +got):\n%s", diff)
	}

	if ta.stdout.Len() != 0 {
		t.Errorf("stdout=%q; want nothing without --verbose", ta.stdout)
	}
}

func TestRunSingleTargetNoAction(t *testing.T) {
	ta := newTestApp(t, mimemap.Map{"text": {"html": "echo open"}})

	code := ta.Run([]string{"picture.png"})
	if code != ExitNoAction {
		t.Errorf("code=%d; want %d", code, ExitNoAction)
	}

	if len(ta.execs) != 0 {
		t.Errorf("execs=%v; want none", ta.execs)
	}

	want := "I don't know how to open 'picture.png' (image/png)\n"
	if ta.stderr.String() != want {
		t.Errorf("stderr=%q; want %q", ta.stderr, want)
	}
}

func TestRunVerbose(t *testing.T) {
	ta := newTestApp(t, mimemap.Map{"image": {"png": "imv -f"}})

	code := ta.Run([]string{"--verbose", "picture.png"})
	if code != ExitReplaced {
		t.Errorf("code=%d; want %d", code, ExitReplaced)
	}

	want := `processing "picture.png":
  mime type: image/png
  taking action: "imv -f"
`
	if diff := cmp.Diff(want, ta.stdout.String()); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
}

func TestRunVerboseNoAction(t *testing.T) {
	ta := newTestApp(t, mimemap.Map{})

	code := ta.Run([]string{"-V", "Makefile"})
	if code != ExitNoAction {
		t.Errorf("code=%d; want %d", code, ExitNoAction)
	}

	want := `processing "Makefile":
  mime type: application/octet-stream
`
	if diff := cmp.Diff(want, ta.stdout.String()); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
}

func TestRunConfigErrorAbortsBeforeDispatch(t *testing.T) {
	ta := newTestApp(t, nil)
	path := filepath.Join(t.TempDir(), "mime_map.toml")
	if err := os.WriteFile(path, []byte("[text\nhtml = "), 0o600); err != nil {
		t.Fatal(err)
	}
	ta.LoadConfig = func() (mimemap.Map, error) {
		return mimemap.LoadFile(path)
	}

	code := ta.Run([]string{"-V", "http://example.com"})
	if code != ExitFailure {
		t.Errorf("code=%d; want %d", code, ExitFailure)
	}

	if len(ta.execs) != 0 {
		t.Errorf("execs=%v; want none", ta.execs)
	}
	if ta.stdout.Len() != 0 {
		t.Errorf("stdout=%q; want nothing before the config is loaded", ta.stdout)
	}
	if !strings.Contains(ta.stderr.String(), "could not load mime map") {
		t.Errorf("stderr=%q; want a diagnostic", ta.stderr)
	}
}

func TestRunMissingConfig(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.LoadConfig = func() (mimemap.Map, error) {
		return mimemap.LoadFile(filepath.Join(t.TempDir(), "mime_map.toml"))
	}

	if code := ta.Run([]string{"a.txt"}); code != ExitFailure {
		t.Errorf("code=%d; want %d", code, ExitFailure)
	}
}

func TestRunManualIsAccepted(t *testing.T) {
	ta := newTestApp(t, mimemap.Map{"text": {"plain": "cat"}})

	code := ta.Run([]string{"--manual", "notes.txt"})
	if code != ExitReplaced {
		t.Errorf("code=%d; want %d", code, ExitReplaced)
	}

	want := [][]string{{"cat", "notes.txt"}}
	if diff := cmp.Diff(want, ta.execs); diff != "" {
		t.Errorf("exec mismatch (-want +got):\n%s", diff)
	}
}

func TestRunNoTargets(t *testing.T) {
	ta := newTestApp(t, mimemap.Map{})

	if code := ta.Run(nil); code != ExitFailure {
		t.Errorf("code=%d; want %d", code, ExitFailure)
	}
	if !strings.Contains(ta.stderr.String(), "--help") {
		t.Errorf("stderr=%q; want a usage hint", ta.stderr)
	}
}

func TestRunReplaceFailure(t *testing.T) {
	ta := newTestApp(t, mimemap.Map{"text": {"plain": "nvim"}})
	ta.Dispatcher.Exec = func(argv0 string, argv []string, envv []string) error {
		return errors.New("permission denied")
	}

	code := ta.Run([]string{"notes.txt"})
	if code != ExitReplaced {
		t.Errorf("code=%d; want %d", code, ExitReplaced)
	}
	if !strings.Contains(ta.stderr.String(), "permission denied") {
		t.Errorf("stderr=%q; want the launch error", ta.stderr)
	}
}

func TestRunMultipleTargetsNoAction(t *testing.T) {
	ta := newTestApp(t, mimemap.Map{})

	code := ta.Run([]string{"a.png", "b.pdf"})
	if code != ExitOK {
		t.Errorf("code=%d; want %d", code, ExitOK)
	}

	want := "I don't know how to open 'a.png' (image/png)\n" +
		"I don't know how to open 'b.pdf' (application/pdf)\n"
	if ta.stderr.String() != want {
		t.Errorf("stderr=%q; want %q", ta.stderr, want)
	}
}

func TestRunTrailingArgumentsAreTargets(t *testing.T) {
	ta := newTestApp(t, mimemap.Map{})

	code := ta.Run([]string{"a.png", "-V", "--manual"})
	if code != ExitOK {
		t.Errorf("code=%d; want %d", code, ExitOK)
	}

	if ta.stdout.Len() != 0 {
		t.Errorf("stdout=%q; -V after the first target must not enable verbose output", ta.stdout)
	}
	for _, target := range []string{"'a.png'", "'-V'", "'--manual'"} {
		if !strings.Contains(ta.stderr.String(), target) {
			t.Errorf("stderr=%q; want it to mention %s", ta.stderr, target)
		}
	}
}

func TestRunMultipleTargetsDetached(t *testing.T) {
	ta := newTestApp(t, mimemap.Map{"text": {"plain": "true"}})
	ta.Dispatcher.LookPath = nil

	code := ta.Run([]string{"a.txt", "b.txt"})
	if code != ExitOK {
		t.Errorf("code=%d; want %d, stderr: %s", code, ExitOK, ta.stderr)
	}

	if len(ta.execs) != 0 {
		t.Errorf("execs=%v; detached targets must not replace the process", ta.execs)
	}
}

func TestRunMultipleTargetsSpawnFailureIsFatal(t *testing.T) {
	ta := newTestApp(t, mimemap.Map{"text": {"plain": "this-command-does-not-exist-xdg-open"}})
	ta.Dispatcher.LookPath = nil

	code := ta.Run([]string{"a.txt", "b.txt"})
	if code != ExitFailure {
		t.Errorf("code=%d; want %d", code, ExitFailure)
	}

	if n := strings.Count(ta.stderr.String(), "could not launch action"); n != 1 {
		t.Errorf("%d launch failures reported; want 1 as the run stops at the first", n)
	}
}

func TestRunMultipleTargetsKeepGoing(t *testing.T) {
	ta := newTestApp(t, mimemap.Map{"text": {"plain": "this-command-does-not-exist-xdg-open"}})
	ta.Dispatcher.LookPath = nil

	code := ta.Run([]string{"--keep-going", "a.txt", "b.txt"})
	if code != ExitFailure {
		t.Errorf("code=%d; want %d", code, ExitFailure)
	}

	if n := strings.Count(ta.stderr.String(), "could not launch action"); n != 2 {
		t.Errorf("%d launch failures reported; want 2", n)
	}
}

func TestRunBroader(t *testing.T) {
	ta := newTestApp(t, mimemap.Map{"text": {"plain": "nvim"}})
	ta.LoadHierarchy = func() (*sharedmimeinfo.Hierarchy, error) {
		return sharedmimeinfo.LoadFromReaders([]io.Reader{
			strings.NewReader("text/x-python application/x-executable\n"),
		})
	}

	code := ta.Run([]string{"-V", "--broader", "script.py"})
	if code != ExitReplaced {
		t.Errorf("code=%d; want %d", code, ExitReplaced)
	}

	want := `processing "script.py":
  mime type: text/x-python
  broader type: text/plain
  taking action: "nvim"
`
	if diff := cmp.Diff(want, ta.stdout.String()); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
}

func TestRunBroaderRequiresFlag(t *testing.T) {
	ta := newTestApp(t, mimemap.Map{"text": {"plain": "nvim"}})
	ta.LoadHierarchy = func() (*sharedmimeinfo.Hierarchy, error) {
		t.Error("hierarchy loaded without --broader")
		return nil, nil
	}

	if code := ta.Run([]string{"script.py"}); code != ExitNoAction {
		t.Errorf("code=%d; want %d", code, ExitNoAction)
	}
}

func TestRunBroaderHierarchyUnavailable(t *testing.T) {
	ta := newTestApp(t, mimemap.Map{"text": {"plain": "nvim"}})

	if code := ta.Run([]string{"--broader", "script.py"}); code != ExitNoAction {
		t.Errorf("code=%d; want %d", code, ExitNoAction)
	}
	if !strings.Contains(ta.stderr.String(), "could not load MIME subclasses") {
		t.Errorf("stderr=%q; want a warning", ta.stderr)
	}
}

func TestRunVersion(t *testing.T) {
	ta := newTestApp(t, mimemap.Map{})

	if code := ta.Run([]string{"--version"}); code != ExitOK {
		t.Errorf("code=%d; want %d", code, ExitOK)
	}
	if !strings.Contains(ta.stdout.String(), version) {
		t.Errorf("stdout=%q; want version %s", ta.stdout, version)
	}
}

func TestNewAppUsesMimeMapFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.toml")
	if err := os.WriteFile(path, []byte("[text]\nhtml = \"echo open\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(mimemap.EnvFile, path)

	config, err := NewApp().LoadConfig()
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(mimemap.Map{"text": {"html": "echo open"}}, config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}
