package domain

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

var severityWeights = map[Severity]float64{
	SeverityCritical: 10.0,
	SeverityHigh:     7.5,
	SeverityMedium:   5.0,
	SeverityLow:      2.5,
	SeverityInfo:     1.0,
}

func (s Severity) IsValid() bool {
	_, ok := severityWeights[s]
	return ok
}

// Weight returns the numeric weight used for risk scoring.
// Unknown severities weigh as info.
func (s Severity) Weight() float64 {
	if w, ok := severityWeights[s]; ok {
		return w
	}
	return severityWeights[SeverityInfo]
}

func (s Severity) String() string {
	return string(s)
}
