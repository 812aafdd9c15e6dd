package pipeline

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-linepipe/pkg/pipeline/model"
)

// Runner executes a parsed pipeline and reports every stage to its observers.
// Execute is safe for concurrent use as long as the observers are.
type Runner struct {
	pipeline *Pipeline
	infos    []*model.StageInfo
	opts     []model.PipelineOption
	notifier Notifier
}

// NewRunner initialises the observers and describes the stages of p to them.
func NewRunner(p *Pipeline, opts ...RunnerOption) (*Runner, error) {
	if p == nil {
		p = Identity()
	}

	runner := &Runner{
		pipeline: p,
		infos:    p.stageInfos(),
		notifier: discardNotifier{},
	}

	for _, opt := range opts {
		opt(runner)
	}

	for _, opt := range runner.opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}

		err = runner.prepare(opt)
		if err != nil {
			return nil, err
		}
	}

	return runner, nil
}

func (r *Runner) prepare(opt model.PipelineOption) error {
	parent := model.StartStage
	stages := append(append(make([]*model.StageInfo, 0, len(r.infos)+1), r.infos...), model.EndStage)

	for _, info := range stages {
		err := opt.PrepareStage(parent, info)
		if err != nil {
			return errors.Wrapf(err, "unable to prepare stage %s", info.Key())
		}

		parent = info
	}

	return nil
}

// Pipeline returns the pipeline run by r.
func (r *Runner) Pipeline() *Pipeline {
	return r.pipeline
}

// Execute runs the pipeline on lines. Errors only come from observers.
func (r *Runner) Execute(lines []string) ([]string, error) {
	exec := &execution{
		notifier: r.notifier,
		observe:  r.observe,
	}

	return exec.run(r.pipeline, lines)
}

func (r *Runner) observe(index, linesIn, linesOut int, computationDuration time.Duration) error {
	parent := model.StartStage
	if index > 0 {
		parent = r.infos[index-1]
	}

	for _, opt := range r.opts {
		err := opt.OnStageOutput(parent, r.infos[index], linesIn, linesOut, computationDuration)
		if err != nil {
			return errors.Wrap(err, "unable to run stage output function")
		}
	}

	return nil
}

// Finish lets the observers complete their work, for instance writing a graph.
func (r *Runner) Finish() error {
	for _, opt := range r.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}
