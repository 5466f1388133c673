package analysis

import (
	"fmt"
	"math"
	"strings"

	"RehabSense/internal/entity"
)

const (
	// maxAllowedDeviation is the average deviation at which posture accuracy
	// bottoms out at 0.
	maxAllowedDeviation = 15.0

	defaultMisalignmentThreshold = 12.0

	deviationHistorySize = 50
)

// jointThresholds maps joint-name keywords to per-joint misalignment
// thresholds in degrees.
var jointThresholds = []struct {
	keyword   string
	threshold float64
}{
	{"knee", 10.0},
	{"hip", 12.0},
	{"shoulder", 15.0},
	{"elbow", 10.0},
}

var idealProfiles = map[entity.ExerciseType]map[string]float64{
	entity.ExerciseSquat: {
		"left_knee":  90.0,
		"right_knee": 90.0,
		"left_hip":   90.0,
		"right_hip":  90.0,
	},
	entity.ExerciseArmRaise: {
		"left_shoulder":  30.0,
		"right_shoulder": 30.0,
		"left_elbow":     180.0,
		"right_elbow":    180.0,
	},
	entity.ExerciseShoulder: {
		"left_shoulder":  45.0,
		"right_shoulder": 45.0,
	},
}

// Misalignment is a single joint whose deviation exceeded its threshold in
// one frame.
type Misalignment struct {
	Joint     string  `json:"joint"`
	Deviation float64 `json:"deviation"`
	Ideal     float64 `json:"ideal"`
	Actual    float64 `json:"actual"`
}

// PostureResult is the outcome of scoring one frame. MisalignmentsCount and
// IncorrectFormAlerts are per-call counts; the cumulative session totals live
// on the analyzer and are read through Summary.
type PostureResult struct {
	PostureAccuracy       float64        `json:"postureAccuracy"`
	AverageJointDeviation float64        `json:"averageJointDeviation"`
	Misalignments         []Misalignment `json:"misalignments"`
	Alerts                []string       `json:"alerts"`
	MisalignmentsCount    int            `json:"misalignmentsCount"`
	IncorrectFormAlerts   int            `json:"incorrectFormAlerts"`
}

// PostureSummary carries the cumulative counters for a session.
type PostureSummary struct {
	MisalignmentsCount    int     `json:"misalignmentsCount"`
	IncorrectFormAlerts   int     `json:"incorrectFormAlerts"`
	AverageJointDeviation float64 `json:"averageJointDeviation"`
}

// PostureAnalyzer scores frames of one session against the exercise's ideal
// profile. It is owned by exactly one session and is not safe for concurrent
// use.
type PostureAnalyzer struct {
	exercise    entity.ExerciseType
	idealAngles map[string]float64

	misalignmentsCount  int
	incorrectFormAlerts int
	jointDeviations     []float64
}

func NewPostureAnalyzer(exercise entity.ExerciseType) *PostureAnalyzer {
	return &PostureAnalyzer{
		exercise:    exercise,
		idealAngles: idealProfiles[exercise],
	}
}

// Score computes the posture result for one frame without touching the
// analyzer's cumulative counters or deviation history. It is the pure
// predicate input; bookkeeping happens in RecordAndScore.
func (p *PostureAnalyzer) Score(angles AngleSet) PostureResult {
	var deviations []float64
	var misalignments []Misalignment
	var alerts []string

	for angleName, actual := range angles {
		ideal, ok := p.idealAngles[angleName]
		if !ok {
			continue
		}

		deviation := math.Abs(actual - ideal)
		deviations = append(deviations, deviation)

		threshold := misalignmentThreshold(angleName)
		if deviation > threshold {
			misalignments = append(misalignments, Misalignment{
				Joint:     angleName,
				Deviation: deviation,
				Ideal:     ideal,
				Actual:    actual,
			})
		}

		if deviation > threshold*2 {
			alerts = append(alerts, fmt.Sprintf("Severe misalignment in %s: %.1f° deviation", angleName, deviation))
		}
	}

	avgDeviation := 0.0
	if len(deviations) > 0 {
		sum := 0.0
		for _, d := range deviations {
			sum += d
		}
		avgDeviation = sum / float64(len(deviations))
	}

	return PostureResult{
		PostureAccuracy:       round2(accuracyScore(avgDeviation)),
		AverageJointDeviation: round2(avgDeviation),
		Misalignments:         misalignments,
		Alerts:                alerts,
		MisalignmentsCount:    len(misalignments),
		IncorrectFormAlerts:   len(alerts),
	}
}

// RecordAndScore scores one frame and applies its side effects: the session's
// cumulative misalignment and alert counters are incremented and the average
// deviation is appended to the rolling history. Call it exactly once per
// frame.
func (p *PostureAnalyzer) RecordAndScore(angles AngleSet) PostureResult {
	result := p.Score(angles)

	p.misalignmentsCount += result.MisalignmentsCount
	p.incorrectFormAlerts += result.IncorrectFormAlerts

	p.jointDeviations = append(p.jointDeviations, result.AverageJointDeviation)
	if len(p.jointDeviations) > deviationHistorySize {
		p.jointDeviations = p.jointDeviations[1:]
	}

	return result
}

// CheckForm reports whether the frame shows correct form: accuracy above 80,
// no misaligned joints and average deviation under 10 degrees. It has no
// observable side effects on the analyzer.
func (p *PostureAnalyzer) CheckForm(angles AngleSet) bool {
	result := p.Score(angles)

	return result.PostureAccuracy > 80.0 &&
		result.MisalignmentsCount == 0 &&
		result.AverageJointDeviation < 10.0
}

// Summary returns the cumulative counters and the rolling average deviation
// over the retained history.
func (p *PostureAnalyzer) Summary() PostureSummary {
	return PostureSummary{
		MisalignmentsCount:    p.misalignmentsCount,
		IncorrectFormAlerts:   p.incorrectFormAlerts,
		AverageJointDeviation: p.rollingAverageDeviation(),
	}
}

func (p *PostureAnalyzer) Reset() {
	p.misalignmentsCount = 0
	p.incorrectFormAlerts = 0
	p.jointDeviations = nil
}

func (p *PostureAnalyzer) rollingAverageDeviation() float64 {
	if len(p.jointDeviations) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, d := range p.jointDeviations {
		sum += d
	}
	return sum / float64(len(p.jointDeviations))
}

func misalignmentThreshold(angleName string) float64 {
	lower := strings.ToLower(angleName)
	for _, jt := range jointThresholds {
		if strings.Contains(lower, jt.keyword) {
			return jt.threshold
		}
	}
	return defaultMisalignmentThreshold
}

// accuracyScore decays linearly from 100 at zero deviation to 0 at
// maxAllowedDeviation.
func accuracyScore(avgDeviation float64) float64 {
	if avgDeviation >= maxAllowedDeviation {
		return 0.0
	}
	return math.Max(0.0, 100.0*(1.0-avgDeviation/maxAllowedDeviation))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
