package command

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrInvalidArguments = errors.New("invalid arguments")
)

// UnknownCommandError is returned when a stage names a command missing from the table.
type UnknownCommandError struct {
	Name string
	// Stage is the 1-based position of the stage in the pipeline, 0 when unknown.
	Stage int
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("%s: '%s'", ErrUnknownCommand, e.Name)
}

func (e *UnknownCommandError) Unwrap() error {
	return ErrUnknownCommand
}

// InvalidArgumentsError is returned when a command rejects its argument tokens.
type InvalidArgumentsError struct {
	Command string
	Args    []string
	// Allowed lists the accepted argument forms, "" standing for no argument.
	Allowed []string
}

func (e *InvalidArgumentsError) Error() string {
	msg := fmt.Sprintf("%s for %s: %s", ErrInvalidArguments, e.Command, strings.Join(e.Args, " "))
	if len(e.Allowed) == 0 {
		return msg
	}

	return msg + " (expected " + formatForms(e.Allowed) + ")"
}

func (e *InvalidArgumentsError) Unwrap() error {
	return ErrInvalidArguments
}

func formatForms(forms []string) string {
	quoted := make([]string, len(forms))
	for i, form := range forms {
		if form == "" {
			quoted[i] = "no argument"

			continue
		}

		quoted[i] = "'" + form + "'"
	}

	return strings.Join(quoted, ", ")
}
