package model

import (
	"strconv"
	"strings"
)

type stageType string

const (
	StartStageType     stageType = "start"
	TransformStageType stageType = "transform"
	NotifyStageType    stageType = "notify"
	EndStageType       stageType = "end"
)

// StageInfo describes a stage to observers.
type StageInfo struct {
	Type stageType
	// Index is the 1-based position of the stage, 0 for the start and end markers.
	Index int
	Name  string
	Args  []string
}

// Key identifies the stage uniquely within a pipeline.
func (s *StageInfo) Key() string {
	if s.Index == 0 {
		return s.Name
	}

	return strconv.Itoa(s.Index) + ". " + s.Label()
}

// Label is the stage as written in the pipeline text.
func (s *StageInfo) Label() string {
	if len(s.Args) == 0 {
		return s.Name
	}

	return s.Name + " " + strings.Join(s.Args, " ")
}

var (
	StartStage = &StageInfo{Type: StartStageType, Name: "start"}
	EndStage   = &StageInfo{Type: EndStageType, Name: "end"}
)
