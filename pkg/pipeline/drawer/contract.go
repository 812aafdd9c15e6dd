// Package drawer renders a pipeline as a Graphviz DOT graph, optionally annotated with measures.
package drawer

import (
	"time"

	"github.com/askiada/go-linepipe/pkg/pipeline/measure"
)

// Drawer is an interface that defines the methods for drawing a pipeline.
type Drawer interface {
	// AddStage adds a stage to the pipeline drawer.
	AddStage(stageKey string) error
	// AddLink adds a link between parent and children stages.
	AddLink(parentStageKey, childrenStageKey string) error
	// Draw writes the pipeline graph.
	Draw() error
	// SetTotalTime sets the total time for the stage.
	SetTotalTime(stageKey string, startTime time.Time) error
	// AddMeasure adds a measure to the pipeline drawer.
	AddMeasure(measure measure.Measure) error
}
