package model

import "time"

// PipelineOption defines the interface for pipeline observers.
type PipelineOption interface {
	// New initialises the observer.
	New() error
	// PrepareStage runs once per stage, in pipeline order, before any execution.
	// The last stage is followed by a call with EndStage.
	PrepareStage(parentStage, stage *StageInfo) error
	// OnStageOutput runs everytime a stage produced its output.
	OnStageOutput(parentStage, stage *StageInfo, linesIn, linesOut int, computationDuration time.Duration) error
	// Finish runs once all executions are done.
	Finish() error
}
