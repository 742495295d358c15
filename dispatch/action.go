package dispatch

import (
	"strings"
)

// Action is a configured command line. Name is the executable, Args are the fixed arguments that
// precede the target.
type Action struct {
	Name string
	Args []string
}

// ParseAction splits command on single spaces. There is no quoting; two consecutive spaces
// produce an empty argument.
func ParseAction(command string) Action {
	split := strings.Split(command, " ")

	return Action{
		Name: split[0],
		Args: split[1:],
	}
}

// Argv returns the full argument vector for opening target, starting with the executable.
func (a Action) Argv(target string) []string {
	argv := make([]string, 0, len(a.Args)+2)
	argv = append(argv, a.Name)
	argv = append(argv, a.Args...)
	argv = append(argv, target)

	return argv
}

func (a Action) String() string {
	return strings.Join(append([]string{a.Name}, a.Args...), " ")
}
