package git

import "time"

// LogOptions bounds the commits git log emits
type LogOptions struct {
	Since time.Time
	Until time.Time
}

// ScanProgress reports parsing progress
type ScanProgress struct {
	CommitsParsed int
	TotalEstimate int
	CurrentHash   string
	Skipped       int
	Done          bool
}

// Percent returns progress in [0, 100]; zero when the total is unknown
func (p ScanProgress) Percent() float64 {
	if p.TotalEstimate <= 0 {
		return 0
	}
	return min(float64(p.CommitsParsed)/float64(p.TotalEstimate)*100, 100)
}
