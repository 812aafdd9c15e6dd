package pipeline

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-linepipe/pkg/command"
)

// Notifier receives the documents published by notify stages.
type Notifier interface {
	Notify(doc command.Document)
}

// NotifierFunc is a [Notifier] that can be represented just by the [Notify] method.
type NotifierFunc func(doc command.Document)

// Notify satisfies [Notifier].
func (fn NotifierFunc) Notify(doc command.Document) { fn(doc) }

type discardNotifier struct{}

func (discardNotifier) Notify(command.Document) {}

type observeFunc func(index, linesIn, linesOut int, computationDuration time.Duration) error

type execution struct {
	notifier Notifier
	observe  observeFunc
}

// ExecuteOption configures Execute.
type ExecuteOption func(e *execution)

// ExecuteNotifier sets the notifier used by notify stages. Documents are dropped by default.
func ExecuteNotifier(notifier Notifier) ExecuteOption {
	return func(e *execution) {
		if notifier != nil {
			e.notifier = notifier
		}
	}
}

func newExecution(opts ...ExecuteOption) *execution {
	exec := &execution{notifier: discardNotifier{}}
	for _, opt := range opts {
		opt(exec)
	}

	return exec
}

// Execute applies every stage of p to lines, in order. A nil pipeline is the identity.
// The input slice is never modified.
func Execute(p *Pipeline, lines []string, opts ...ExecuteOption) []string {
	// without observer the fold cannot fail
	out, _ := newExecution(opts...).run(p, lines)

	return out
}

func (e *execution) run(p *Pipeline, lines []string) ([]string, error) {
	out := lines

	for i, stage := range p.Stages() {
		start := time.Now()
		next := e.apply(stage, out)

		if e.observe != nil {
			err := e.observe(i, len(out), len(next), time.Since(start))
			if err != nil {
				return nil, errors.Wrapf(err, "stage %d (%s)", i+1, stage)
			}
		}

		out = next
	}

	return out, nil
}

func (e *execution) apply(stage *command.Stage, lines []string) []string {
	if doc, ok := stage.Document(); ok {
		go e.notifier.Notify(doc)
	}

	return stage.Apply(lines)
}
