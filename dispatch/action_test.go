package dispatch

import (
	"github.com/google/go-cmp/cmp"
	"testing"
)

func TestParseAction(t *testing.T) {
	tests := map[string]Action{
		"firefox":      {Name: "firefox", Args: []string{}},
		"echo open":    {Name: "echo", Args: []string{"open"}},
		"foot -e nvim": {Name: "foot", Args: []string{"-e", "nvim"}},
		"mpv  --fs":    {Name: "mpv", Args: []string{"", "--fs"}},
		`sh -c "a b"`:  {Name: "sh", Args: []string{"-c", `"a`, `b"`}},
		"":             {Name: "", Args: []string{}},
		"imv\t-f":      {Name: "imv\t-f", Args: []string{}},
	}

	for command, want := range tests {
		got := ParseAction(command)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ParseAction(%q) mismatch (-want +got):\n%s", command, diff)
		}
	}
}

func TestActionArgv(t *testing.T) {
	got := ParseAction("echo open").Argv("http://example.com")
	want := []string{"echo", "open", "http://example.com"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Argv() mismatch (-want +got):\n%s", diff)
	}
}

func TestActionString(t *testing.T) {
	for _, command := range []string{"firefox", "foot -e nvim", "mpv  --fs"} {
		if got := ParseAction(command).String(); got != command {
			t.Errorf("ParseAction(%q).String()=%q", command, got)
		}
	}
}
