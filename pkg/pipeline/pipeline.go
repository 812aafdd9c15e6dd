package pipeline

import (
	"strings"

	"github.com/askiada/go-linepipe/pkg/command"
	"github.com/askiada/go-linepipe/pkg/pipeline/model"
)

// Pipeline is an ordered list of stages. A pipeline without stage is the identity.
type Pipeline struct {
	stages []*command.Stage
}

// Identity returns the pipeline that returns its input unchanged.
func Identity() *Pipeline {
	return &Pipeline{}
}

// IsIdentity reports whether the pipeline has no stage.
func (p *Pipeline) IsIdentity() bool {
	return p == nil || len(p.stages) == 0
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	if p == nil {
		return 0
	}

	return len(p.stages)
}

// Stages returns a copy of the stage list.
func (p *Pipeline) Stages() []*command.Stage {
	if p == nil {
		return nil
	}

	return append([]*command.Stage(nil), p.stages...)
}

// String returns the canonical text of the pipeline.
func (p *Pipeline) String() string {
	parts := make([]string, p.Len())
	for i, stage := range p.Stages() {
		parts[i] = stage.String()
	}

	return strings.Join(parts, " "+separator+" ")
}

func (p *Pipeline) stageInfos() []*model.StageInfo {
	infos := make([]*model.StageInfo, p.Len())
	for i, stage := range p.Stages() {
		stageType := model.TransformStageType
		if stage.Kind == command.KindNotify {
			stageType = model.NotifyStageType
		}

		infos[i] = &model.StageInfo{
			Type:  stageType,
			Index: i + 1,
			Name:  stage.Name,
			Args:  stage.Args,
		}
	}

	return infos
}
