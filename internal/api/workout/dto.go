package workout

import (
	"time"

	"RehabSense/internal/analysis"
	"RehabSense/internal/entity"
)

type SessionStartRequest struct {
	Exercise string `json:"exercise" validate:"required,oneof=squat arm-raise shoulder"`
	UserID   string `json:"userId" validate:"omitempty,max=64"`
}

type SessionStartResponse struct {
	SessionID string    `json:"sessionId"`
	Exercise  string    `json:"exercise"`
	StartedAt time.Time `json:"startedAt"`
}

type MetricsUpdateRequest struct {
	TotalReps             int     `json:"totalReps" validate:"gte=0"`
	CorrectReps           int     `json:"correctReps" validate:"gte=0"`
	IncorrectReps         int     `json:"incorrectReps" validate:"gte=0"`
	PostureAccuracy       float64 `json:"postureAccuracy" validate:"gte=0,lte=100"`
	MisalignmentsCount    int     `json:"misalignmentsCount" validate:"gte=0"`
	IncorrectFormAlerts   int     `json:"incorrectFormAlerts" validate:"gte=0"`
	AverageJointDeviation float64 `json:"averageJointDeviation" validate:"gte=0"`
}

type FeedbackResponse struct {
	SessionID         string                   `json:"sessionId"`
	Metrics           entity.SessionMetrics    `json:"metrics"`
	Feedback          string                   `json:"feedback"`
	PerformanceRating entity.PerformanceRating `json:"performanceRating"`
	Alerts            []string                 `json:"alerts"`
}

type SessionSummary struct {
	SessionID             string                   `json:"sessionId"`
	Exercise              string                   `json:"exercise"`
	TotalReps             int                      `json:"totalReps"`
	CorrectReps           int                      `json:"correctReps"`
	IncorrectReps         int                      `json:"incorrectReps"`
	PostureAccuracy       float64                  `json:"postureAccuracy"`
	MisalignmentsCount    int                      `json:"misalignmentsCount"`
	IncorrectFormAlerts   int                      `json:"incorrectFormAlerts"`
	SessionDuration       int                      `json:"sessionDuration"`
	AverageJointDeviation float64                  `json:"averageJointDeviation"`
	PerformanceRating     entity.PerformanceRating `json:"performanceRating"`
	StartedAt             time.Time                `json:"startedAt"`
	EndedAt               time.Time                `json:"endedAt"`
}

// StreamMessage is the envelope for every message on the frame WebSocket.
type StreamMessage struct {
	Type string       `json:"type"`
	Data FramePayload `json:"data"`
}

const (
	MessageTypeFrame    = "frame"
	MessageTypeFeedback = "feedback"
	MessageTypeError    = "error"
)

// FramePayload carries one frame of input. Clients that run pose estimation
// themselves send Keypoints directly; clients that stream raw camera frames
// send a base64 image in Frame and the backend delegates extraction to the
// pose service.
type FramePayload struct {
	Keypoints entity.Keypoints `json:"keypoints,omitempty"`
	Frame     string           `json:"frame,omitempty"`
	Timestamp float64          `json:"timestamp,omitempty"`
}

// FrameResult is the per-frame output pushed back over the stream: the
// computed angles, the posture verdict, the repetition status and the merged
// session metrics.
type FrameResult struct {
	SessionID         string                   `json:"sessionId"`
	Angles            analysis.AngleSet        `json:"angles"`
	Posture           analysis.PostureResult   `json:"posture"`
	Reps              analysis.RepStatus       `json:"reps"`
	Metrics           entity.SessionMetrics    `json:"metrics"`
	Feedback          string                   `json:"feedback"`
	PerformanceRating entity.PerformanceRating `json:"performanceRating"`
}

type StreamErrorResponse struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
