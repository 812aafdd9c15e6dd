package pipeline

import (
	"strings"

	"github.com/askiada/go-linepipe/pkg/command"
)

const separator = "|"

type parseConfig struct {
	check bool
}

// ParseOption configures Parse.
type ParseOption func(cfg *parseConfig)

// ParseCheck only validates the text. On success Parse returns the identity pipeline.
func ParseCheck() ParseOption {
	return func(cfg *parseConfig) {
		cfg.check = true
	}
}

// Parse builds a pipeline from text.
//
// Empty or blank text gives the identity pipeline. Stages are resolved from left to right and the first error
// aborts the parse: an unknown command returns a *command.UnknownCommandError, factory errors are returned as is.
// An empty stage, as produced by a leading, trailing or doubled separator, is an unknown command with an empty
// name.
func Parse(text string, opts ...ParseOption) (*Pipeline, error) {
	cfg := parseConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if strings.TrimSpace(text) == "" {
		return Identity(), nil
	}

	parts := strings.Split(text, separator)
	stages := make([]*command.Stage, 0, len(parts))

	for i, part := range parts {
		stage, err := parseStage(i+1, part)
		if err != nil {
			return nil, err
		}

		stages = append(stages, stage)
	}

	if cfg.check {
		return Identity(), nil
	}

	return &Pipeline{stages: stages}, nil
}

func parseStage(index int, text string) (*command.Stage, error) {
	fields := strings.Fields(text)

	var (
		name string
		args []string
	)

	if len(fields) > 0 {
		name, args = fields[0], fields[1:]
	}

	factory, ok := command.Lookup(name)
	if !ok {
		return nil, &command.UnknownCommandError{Name: name, Stage: index}
	}

	return factory(args)
}
