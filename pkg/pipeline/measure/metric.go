package measure

import (
	"sync"
	"time"
)

// TransportInfo counts the lines received from a parent stage.
type TransportInfo struct {
	Lines int64
	total int64
}

// AVGLines returns the average number of lines per execution.
func (t *TransportInfo) AVGLines() int64 {
	if t.total == 0 {
		return 0
	}

	return t.Lines / t.total
}

type DefaultMetric struct {
	allTransports map[string]*TransportInfo
	mu            *sync.Mutex
	EndDuration   time.Duration
	stepElapsed   time.Duration
	total         int64
	linesIn       int64
	linesOut      int64
}

func (mt *DefaultMetric) AddDuration(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.total++
	mt.stepElapsed += elapsed
}

func (mt *DefaultMetric) AddLines(linesIn, linesOut int) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.linesIn += int64(linesIn)
	mt.linesOut += int64(linesOut)
}

func (mt *DefaultMetric) SetTotalDuration(endDuration time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.EndDuration = endDuration
}

func (mt *DefaultMetric) GetTotalDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.EndDuration
}

func (mt *DefaultMetric) AddTransport(inputStageName string, lines int) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.allTransports[inputStageName] == nil {
		mt.allTransports[inputStageName] = &TransportInfo{}
	}

	tr := mt.allTransports[inputStageName]
	tr.Lines += int64(lines)
	tr.total++
}

func (mt *DefaultMetric) AVGDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.total == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(mt.stepElapsed) / float64(mt.total)))
}

func (mt *DefaultMetric) Runs() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.total
}

func (mt *DefaultMetric) LinesIn() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.linesIn
}

func (mt *DefaultMetric) LinesOut() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.linesOut
}

// AllTransports returns a snapshot of the transports.
func (mt *DefaultMetric) AllTransports() map[string]*TransportInfo {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	all := make(map[string]*TransportInfo, len(mt.allTransports))
	for name, tr := range mt.allTransports {
		cp := *tr
		all[name] = &cp
	}

	return all
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Hour:
		d = d.Round(time.Hour)
	case d > time.Minute:
		d = d.Round(time.Minute)
	case d > time.Second:
		d = d.Round(time.Second)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond)
	}

	return d
}

var _ Metric = (*DefaultMetric)(nil)
