package pipeline

import "github.com/askiada/go-linepipe/pkg/pipeline/model"

type RunnerOption func(r *Runner)

// RunnerNotifier sets the notifier used by notify stages.
func RunnerNotifier(notifier Notifier) RunnerOption {
	return func(r *Runner) {
		if notifier != nil {
			r.notifier = notifier
		}
	}
}

// RunnerObserver registers an observer. Observers are called in registration order.
func RunnerObserver(observer model.PipelineOption) RunnerOption {
	return func(r *Runner) {
		r.opts = append(r.opts, observer)
	}
}
