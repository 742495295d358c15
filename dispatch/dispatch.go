// Package dispatch launches the command configured for a MIME type.
//
// A single target is opened in [Replace] mode: the command takes over the current process. When
// several targets are opened, each is started in [Detached] mode and the caller moves on.
package dispatch

import (
	"github.com/MatthiasKunnen/xdg-open/mimemap"
	"github.com/MatthiasKunnen/xdg-open/mimetype"
	"golang.org/x/sys/unix"
	"os"
	"os/exec"
	"syscall"
)

// Mode selects how the command is started.
type Mode int

const (
	// Replace replaces the current process image with the command. Standard streams and the
	// environment are inherited. On success, Dispatch does not return.
	Replace Mode = iota

	// Detached starts the command in a new session with its standard streams connected to the
	// null device and does not wait for it.
	Detached
)

func (m Mode) String() string {
	switch m {
	case Replace:
		return "replace"
	case Detached:
		return "detached"
	default:
		return "unknown"
	}
}

// Result describes a started command.
type Result struct {
	// Mime is the type whose action was used. It differs from the resolved type when a broader
	// type was used.
	Mime   mimetype.MimeType
	Action Action
	Mode   Mode

	// Pid is the process ID of a detached command.
	Pid int
}

// Dispatcher starts the command configured for a MIME type. The zero value is ready to use.
type Dispatcher struct {
	// Broader, if set, returns the broader types to try, in order, when no action exists for the
	// exact type.
	Broader func(mimetype.MimeType) []mimetype.MimeType

	// OnAction, if set, is called right before the command is started.
	OnAction func(mime mimetype.MimeType, action Action)

	// Exec replaces the current process. Defaults to [unix.Exec].
	Exec func(argv0 string, argv []string, envv []string) error

	// LookPath resolves the executable of an action. Defaults to [exec.LookPath].
	LookPath func(file string) (string, error)

	// NullDevice is connected to the standard streams of detached commands. Defaults to
	// [os.DevNull].
	NullDevice string
}

// Lookup returns the action configured for mime and the type it was configured for.
func (d *Dispatcher) Lookup(mime mimetype.MimeType, config mimemap.Map) (mimetype.MimeType, Action, bool) {
	if command, ok := config.Lookup(mime); ok {
		return mime, ParseAction(command), true
	}

	if d.Broader == nil {
		return mime, Action{}, false
	}

	for _, broader := range d.Broader(mime) {
		if command, ok := config.Lookup(broader); ok {
			return broader, ParseAction(command), true
		}
	}

	return mime, Action{}, false
}

// Dispatch opens target with the action configured for mime.
// Returns *[NoActionError] if there is none and *[SpawnError] if the command could not be started.
func (d *Dispatcher) Dispatch(
	mime mimetype.MimeType,
	config mimemap.Map,
	target string,
	mode Mode,
) (Result, error) {
	matched, action, ok := d.Lookup(mime, config)
	if !ok {
		return Result{}, &NoActionError{Target: target, Mime: mime}
	}

	if d.OnAction != nil {
		d.OnAction(matched, action)
	}

	result := Result{
		Mime:   matched,
		Action: action,
		Mode:   mode,
	}

	var err error
	switch mode {
	case Detached:
		result.Pid, err = d.detach(action, target)
	default:
		err = d.replace(action, target)
	}
	if err != nil {
		return result, &SpawnError{Action: action, Target: target, Err: err}
	}

	return result, nil
}

func (d *Dispatcher) replace(action Action, target string) error {
	path, err := d.lookPath(action.Name)
	if err != nil {
		return err
	}

	execFn := d.Exec
	if execFn == nil {
		execFn = unix.Exec
	}

	return execFn(path, action.Argv(target), os.Environ())
}

func (d *Dispatcher) detach(action Action, target string) (int, error) {
	nullDevice := d.NullDevice
	if nullDevice == "" {
		nullDevice = os.DevNull
	}

	null, err := os.OpenFile(nullDevice, os.O_RDWR, 0)
	if err != nil {
		return 0, err
	}
	defer null.Close()

	argv := action.Argv(target)
	cmd := exec.Command(argv[0], argv[1:]...)
	if d.LookPath != nil {
		path, err := d.LookPath(action.Name)
		if err != nil {
			return 0, err
		}
		cmd.Path = path
		cmd.Err = nil
	}
	cmd.Stdin = null
	cmd.Stdout = null
	cmd.Stderr = null
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return 0, err
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return pid, err
	}

	return pid, nil
}

func (d *Dispatcher) lookPath(file string) (string, error) {
	if d.LookPath != nil {
		return d.LookPath(file)
	}

	return exec.LookPath(file)
}
