package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-linepipe/pkg/pipeline/measure"
	"github.com/askiada/go-linepipe/pkg/pipeline/model"
)

type pipelineDrawer struct {
	Drawer
	m         measure.Measure
	startTime time.Time
}

func (pd *pipelineDrawer) New() error {
	pd.startTime = time.Now()

	err := pd.AddStage(model.StartStage.Key())
	if err != nil {
		return errors.Wrap(err, "unable to add start stage to drawer")
	}

	return nil
}

func (pd *pipelineDrawer) PrepareStage(parentStage, stage *model.StageInfo) error {
	err := pd.AddStage(stage.Key())
	if err != nil {
		return err
	}

	return pd.AddLink(parentStage.Key(), stage.Key())
}

func (pd *pipelineDrawer) OnStageOutput(_, _ *model.StageInfo, _, _ int, _ time.Duration) error {
	return nil
}

func (pd *pipelineDrawer) Finish() error {
	if pd.m != nil {
		err := pd.SetTotalTime(model.EndStage.Key(), pd.startTime)
		if err != nil {
			return errors.Wrap(err, "unable to set total time")
		}

		err = pd.AddMeasure(pd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err := pd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}

// PipelineDrawer draws the stages of the pipeline when it finishes.
// When measure is not nil, the graph is annotated with it.
func PipelineDrawer(drawer Drawer, measure measure.Measure) model.PipelineOption {
	return &pipelineDrawer{Drawer: drawer, m: measure}
}
