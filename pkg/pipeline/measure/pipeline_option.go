package measure

import (
	"time"

	"github.com/askiada/go-linepipe/pkg/pipeline/model"
)

type pipelineMeasure struct {
	Measure
	startTime time.Time
}

func (pm *pipelineMeasure) New() error {
	pm.startTime = time.Now()
	pm.AddMetric(model.StartStage.Key())
	pm.AddMetric(model.EndStage.Key())

	return nil
}

func (pm *pipelineMeasure) PrepareStage(_, stage *model.StageInfo) error {
	pm.AddMetric(stage.Key())

	return nil
}

func (pm *pipelineMeasure) OnStageOutput(parentStage, stage *model.StageInfo, linesIn, linesOut int, computationDuration time.Duration) error {
	mt := pm.GetMetric(stage.Key())
	if mt == nil {
		mt = pm.AddMetric(stage.Key())
	}

	mt.AddDuration(computationDuration)
	mt.AddLines(linesIn, linesOut)
	mt.AddTransport(parentStage.Key(), linesIn)

	return nil
}

func (pm *pipelineMeasure) Finish() error {
	pm.GetMetric(model.EndStage.Key()).SetTotalDuration(time.Since(pm.startTime))

	return nil
}

// PipelineMeasure records durations and line counts of every stage into measure.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{Measure: measure}
}
