package ledger

// Status classifies a closing stock level.
type Status string

const (
	StatusCritical Status = "critical"
	StatusLow      Status = "low"
	StatusNormal   Status = "normal"
)

// Thresholds are the exclusive upper bounds of the critical and low levels.
type Thresholds struct {
	Critical int64
	Low      int64
}

// DefaultThresholds returns the levels used when none are configured.
func DefaultThresholds() Thresholds {
	return Thresholds{Critical: 10, Low: 50}
}

// Classify returns the status of a closing stock.
func (t Thresholds) Classify(closing int64) Status {
	switch {
	case closing < t.Critical:
		return StatusCritical
	case closing < t.Low:
		return StatusLow
	default:
		return StatusNormal
	}
}
