// Package cli implements the xdg-open command line.
package cli

import (
	"errors"
	"fmt"
	"github.com/MatthiasKunnen/xdg-open/dispatch"
	"github.com/MatthiasKunnen/xdg-open/mimemap"
	"github.com/MatthiasKunnen/xdg-open/mimetype"
	"github.com/MatthiasKunnen/xdg-open/sharedmimeinfo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"io"
	"os"
)

const version = "0.1.0"

// Exit codes.
const (
	ExitOK = 0

	// ExitFailure is used for configuration, usage and launch errors.
	ExitFailure = 1

	// ExitNoAction is used when the only target has no configured action.
	ExitNoAction = 3

	// ExitReplaced is used when the only target had an action and replacing the process was
	// attempted. It is only observed when the replacement failed.
	ExitReplaced = 4
)

// App holds the dependencies of the command. Use [NewApp] for the defaults.
type App struct {
	Resolver   *mimetype.Resolver
	Dispatcher *dispatch.Dispatcher

	// LoadConfig loads the mime map. It is called once per run, before any target is processed.
	LoadConfig func() (mimemap.Map, error)

	// LoadHierarchy loads the subclass hierarchy used by --broader.
	LoadHierarchy func() (*sharedmimeinfo.Hierarchy, error)

	Stdout io.Writer
	Stderr io.Writer
	Logger *logrus.Logger
}

// NewApp returns an App that reads its configuration from the environment and launches real
// processes.
func NewApp() *App {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	return &App{
		Resolver:   mimetype.NewResolver(mimetype.DefaultMatches()),
		Dispatcher: &dispatch.Dispatcher{},
		LoadConfig: func() (mimemap.Map, error) {
			path := mimemap.Location()
			logger.WithField("path", path).Debug("loading mime map")
			return mimemap.LoadFile(path)
		},
		LoadHierarchy: sharedmimeinfo.LoadFromOs,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Logger:        logger,
	}
}

// Main runs the command with the process arguments and returns the exit code.
func Main() int {
	return NewApp().Run(os.Args[1:])
}

type options struct {
	manual    bool
	verbose   bool
	broader   bool
	keepGoing bool
}

// exitError ends a run with code. The cause has already been reported.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Command returns the cobra command of a.
func (a *App) Command() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "xdg-open [flags] <path> [<path>...]",
		Short: "Open files and URLs with the command configured for their MIME type",
		Long: `xdg-open opens files and URLs with the command configured for their MIME type.

Commands are read from $MIME_MAP_FILE or, if unset, $XDG_DATA_HOME/mime_map.toml:

  [text]
  html = "firefox --new-tab"

A single target replaces this process with its command. Several targets are each started
in the background.`,
		Version:       version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.open(opts, args)
		},
	}

	flags := cmd.Flags()
	flags.SetInterspersed(false)
	flags.BoolVar(&opts.manual, "manual", false, "does nothing")
	flags.BoolVarP(&opts.verbose, "verbose", "V", false, "print the MIME type and action of every target")
	flags.BoolVarP(&opts.broader, "broader", "b", false,
		"fall back on broader MIME types from the shared MIME-info database")
	flags.BoolVarP(&opts.keepGoing, "keep-going", "k", false,
		"with several targets, continue after a command fails to launch")

	return cmd
}

// Run executes the command with args and returns the exit code.
func (a *App) Run(args []string) int {
	cmd := a.Command()
	cmd.SetArgs(args)
	cmd.SetOut(a.Stdout)
	cmd.SetErr(a.Stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitOK
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}

	fmt.Fprintf(a.Stderr, "Error: %v\n", err)
	fmt.Fprintf(a.Stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
	return ExitFailure
}
