package pipeline_test

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-linepipe/pkg/command"
	"github.com/askiada/go-linepipe/pkg/pipeline"
	"github.com/askiada/go-linepipe/pkg/pipeline/drawer"
	"github.com/askiada/go-linepipe/pkg/pipeline/measure"
	"github.com/askiada/go-linepipe/pkg/pipeline/model"
)

type recordingOption struct {
	mu     sync.Mutex
	events []string
	failOn string
}

func (r *recordingOption) record(event string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
	if event == r.failOn {
		return assert.AnError
	}

	return nil
}

func (r *recordingOption) New() error {
	return r.record("new")
}

func (r *recordingOption) PrepareStage(parentStage, stage *model.StageInfo) error {
	return r.record("prepare " + parentStage.Key() + " -> " + stage.Key())
}

func (r *recordingOption) OnStageOutput(_, stage *model.StageInfo, _, _ int, _ time.Duration) error {
	return r.record("output " + stage.Key())
}

func (r *recordingOption) Finish() error {
	return r.record("finish")
}

func TestRunnerCallsObservers(t *testing.T) {
	t.Parallel()

	opt := &recordingOption{}
	runner, err := pipeline.NewRunner(mustParse(t, "sort desc | uniq"), pipeline.RunnerObserver(opt))
	require.NoError(t, err)

	got, err := runner.Execute([]string{"a", "b", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, got)
	require.NoError(t, runner.Finish())

	assert.Equal(t, []string{
		"new",
		"prepare start -> 1. sort desc",
		"prepare 1. sort desc -> 2. uniq",
		"prepare 2. uniq -> end",
		"output 1. sort desc",
		"output 2. uniq",
		"finish",
	}, opt.events)
}

func TestRunnerIdentity(t *testing.T) {
	t.Parallel()

	opt := &recordingOption{}
	runner, err := pipeline.NewRunner(nil, pipeline.RunnerObserver(opt))
	require.NoError(t, err)
	assert.True(t, runner.Pipeline().IsIdentity())

	got, err := runner.Execute([]string{"b", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, got)
	assert.Equal(t, []string{"new", "prepare start -> end"}, opt.events)
}

func TestRunnerObserverErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		failOn    string
		newErr    bool
		runErr    bool
		finishErr bool
	}{
		"new":     {failOn: "new", newErr: true},
		"prepare": {failOn: "prepare start -> 1. uniq", newErr: true},
		"output":  {failOn: "output 1. uniq", runErr: true},
		"finish":  {failOn: "finish", finishErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			runner, err := pipeline.NewRunner(mustParse(t, "uniq"), pipeline.RunnerObserver(&recordingOption{failOn: tc.failOn}))
			if tc.newErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, assert.AnError)

				return
			}

			require.NoError(t, err)

			got, err := runner.Execute([]string{"a"})
			if tc.runErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, assert.AnError)
				assert.Contains(t, err.Error(), "stage 1 (uniq)")
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)

			err = runner.Finish()
			if tc.finishErr {
				assert.ErrorIs(t, err, assert.AnError)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestRunnerNotifier(t *testing.T) {
	t.Parallel()

	docs := make(chan command.Document, 1)
	runner, err := pipeline.NewRunner(mustParse(t, "help"), pipeline.RunnerNotifier(pipeline.NotifierFunc(func(doc command.Document) {
		docs <- doc
	})))
	require.NoError(t, err)

	got, err := runner.Execute([]string{"z"})
	require.NoError(t, err)
	assert.Equal(t, []string{"z"}, got)

	select {
	case doc := <-docs:
		assert.Equal(t, "linepipe", doc.Title)
	case <-time.After(5 * time.Second):
		t.Fatal("help document was never published")
	}
}

func TestRunnerConcurrentWithMeasureAndDrawer(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	out := &bytes.Buffer{}

	runner, err := pipeline.NewRunner(mustParse(t, "uniq | sort"),
		pipeline.RunnerObserver(measure.PipelineMeasure(msr)),
		pipeline.RunnerObserver(drawer.PipelineDrawer(drawer.NewDOTWriterDrawer(out), msr)),
	)
	require.NoError(t, err)

	const runs = 20

	wg := sync.WaitGroup{}
	wg.Add(runs)

	for i := range runs {
		go func() {
			defer wg.Done()

			got, err := runner.Execute([]string{"b", "a", "b", strings.Repeat("c", i%2+1)})
			assert.NoError(t, err)
			assert.Len(t, got, 3)
		}()
	}

	wg.Wait()
	require.NoError(t, runner.Finish())

	uniqMetric := msr.GetMetric("1. uniq")
	require.NotNil(t, uniqMetric)
	assert.Equal(t, int64(runs), uniqMetric.Runs())
	assert.Equal(t, int64(4*runs), uniqMetric.LinesIn())
	assert.Equal(t, int64(3*runs), uniqMetric.LinesOut())

	sortMetric := msr.GetMetric("2. sort")
	require.NotNil(t, sortMetric)
	assert.Equal(t, int64(3*runs), sortMetric.AllTransports()["1. uniq"].Lines)

	graph := out.String()
	assert.Contains(t, graph, "digraph")
	assert.Contains(t, graph, `"start" -> "1. uniq"`)
	assert.Contains(t, graph, `"1. uniq" -> "2. sort"`)
	assert.Contains(t, graph, `"2. sort" -> "end"`)
	assert.Contains(t, graph, `label="3 lines"`)
}
