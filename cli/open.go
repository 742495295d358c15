package cli

import (
	"errors"
	"fmt"
	"github.com/MatthiasKunnen/xdg-open/dispatch"
	"github.com/MatthiasKunnen/xdg-open/mimetype"
	"github.com/sirupsen/logrus"
)

// open resolves and dispatches every target in order.
func (a *App) open(opts options, targets []string) error {
	if opts.verbose {
		a.Logger.SetLevel(logrus.DebugLevel)
	}

	config, err := a.LoadConfig()
	if err != nil {
		a.Logger.WithError(err).Error("could not load mime map")
		return &exitError{code: ExitFailure}
	}

	d := *a.Dispatcher
	if opts.broader {
		hierarchy, err := a.LoadHierarchy()
		if err != nil {
			a.Logger.WithError(err).Warn("could not load MIME subclasses, only exact types are used")
		} else {
			d.Broader = hierarchy.Broader
		}
	}

	mode := dispatch.Replace
	if len(targets) > 1 {
		mode = dispatch.Detached
	}

	failed := false
	for _, target := range targets {
		if opts.verbose {
			fmt.Fprintf(a.Stdout, "processing %q:\n", target)
		}

		mime := a.Resolver.Resolve(target)
		if opts.verbose {
			fmt.Fprintf(a.Stdout, "  mime type: %s\n", mime)
			d.OnAction = func(matched mimetype.MimeType, action dispatch.Action) {
				if !matched.Equal(mime) {
					fmt.Fprintf(a.Stdout, "  broader type: %s\n", matched)
				}
				fmt.Fprintf(a.Stdout, "  taking action: %q\n", action.String())
			}
		}

		result, err := d.Dispatch(mime, config, target, mode)

		var noAction *dispatch.NoActionError
		var spawnErr *dispatch.SpawnError
		switch {
		case err == nil:
			a.Logger.WithFields(logrus.Fields{
				"target": target,
				"action": result.Action.String(),
				"mode":   result.Mode.String(),
				"pid":    result.Pid,
			}).Debug("launched")
		case errors.As(err, &noAction):
			fmt.Fprintln(a.Stderr, noAction.Error())
			if mode == dispatch.Replace {
				return &exitError{code: ExitNoAction}
			}
		case errors.As(err, &spawnErr):
			a.Logger.WithError(spawnErr.Err).WithFields(logrus.Fields{
				"target": target,
				"action": spawnErr.Action.String(),
			}).Error("could not launch action")

			switch {
			case mode == dispatch.Replace:
				return &exitError{code: ExitReplaced}
			case !opts.keepGoing:
				return &exitError{code: ExitFailure}
			}
			failed = true
		default:
			return err
		}
	}

	switch {
	case mode == dispatch.Replace:
		// Only reached when Exec returned without replacing the process.
		return &exitError{code: ExitReplaced}
	case failed:
		return &exitError{code: ExitFailure}
	}

	return nil
}
