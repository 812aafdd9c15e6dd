package measure

import "time"

// Measure holds one Metric per stage, keyed by stage key.
type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric accumulates the executions of a stage.
type Metric interface {
	AddDuration(elapsed time.Duration)
	AddLines(linesIn, linesOut int)
	AddTransport(inputStageName string, lines int)
	AVGDuration() time.Duration
	SetTotalDuration(endDuration time.Duration)
	GetTotalDuration() time.Duration
	Runs() int64
	LinesIn() int64
	LinesOut() int64
	AllTransports() map[string]*TransportInfo
}
