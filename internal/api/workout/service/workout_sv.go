package workoutService

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"RehabSense/internal/analysis"
	"RehabSense/internal/api/workout"
	"RehabSense/internal/entity"
	contextPkg "RehabSense/pkg/context"
)

const metricsCacheTTL = 30 * time.Minute

func (s *workoutService) StartSession(ctx context.Context, req workout.SessionStartRequest) (*workout.SessionStartResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	exercise := entity.ExerciseType(req.Exercise)
	if !exercise.IsValid() {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"exercise":   req.Exercise,
		}).Warn("Unsupported exercise type")
		return nil, workout.ErrInvalidExercise
	}

	sessionID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate session ULID")
		return nil, workout.ErrInternalServerError
	}

	sess := &liveSession{
		id:        sessionID,
		userID:    req.UserID,
		exercise:  exercise,
		startedAt: time.Now(),
		analyzer:  analysis.NewPostureAnalyzer(exercise),
		counter:   analysis.NewRepCounter(exercise),
		metrics:   entity.NewSessionMetrics(),
	}

	repo, err := s.workoutRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	record := sess.toRecord()
	if err := repo.Sessions.CreateSession(ctx, record); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to persist workout session")
		return nil, err
	}

	s.mu.Lock()
	s.sessions[sessionID] = sess
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": sessionID,
		"exercise":   exercise.String(),
	}).Info("Workout session started")

	return &workout.SessionStartResponse{
		SessionID: sessionID,
		Exercise:  exercise.String(),
		StartedAt: sess.startedAt,
	}, nil
}

// ProcessFrame runs the analysis pipeline for one frame: resolve angles,
// judge form with the pure predicate, record posture bookkeeping exactly
// once, then advance the repetition state machine.
func (s *workoutService) ProcessFrame(ctx context.Context, sessionID string, payload workout.FramePayload) (*workout.FrameResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	sess, ok := s.lookupSession(sessionID)
	if !ok {
		return nil, workout.ErrSessionNotFound
	}

	keypoints, err := s.resolveKeypoints(requestID, payload)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	angles := analysis.ResolveAngles(sess.exercise, keypoints)

	isCorrectForm := sess.analyzer.CheckForm(angles)
	posture := sess.analyzer.RecordAndScore(angles)
	reps := sess.counter.Update(angles, isCorrectForm)

	summary := sess.analyzer.Summary()
	sess.metrics = entity.SessionMetrics{
		TotalReps:             reps.TotalReps,
		CorrectReps:           reps.CorrectReps,
		IncorrectReps:         reps.IncorrectReps,
		PostureAccuracy:       posture.PostureAccuracy,
		MisalignmentsCount:    summary.MisalignmentsCount,
		IncorrectFormAlerts:   summary.IncorrectFormAlerts,
		AverageJointDeviation: summary.AverageJointDeviation,
	}

	rating := performanceRating(sess.metrics)

	s.cacheMetrics(ctx, sessionID, sess.metrics)

	return &workout.FrameResult{
		SessionID:         sessionID,
		Angles:            angles,
		Posture:           posture,
		Reps:              reps,
		Metrics:           sess.metrics,
		Feedback:          feedbackMessage(sess.metrics, rating),
		PerformanceRating: rating,
	}, nil
}

func (s *workoutService) UpdateMetrics(ctx context.Context, sessionID string, req workout.MetricsUpdateRequest) (*workout.FeedbackResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	sess, ok := s.lookupSession(sessionID)
	if !ok {
		return nil, workout.ErrSessionNotFound
	}

	sess.mu.Lock()
	sess.metrics = entity.SessionMetrics{
		TotalReps:             req.TotalReps,
		CorrectReps:           req.CorrectReps,
		IncorrectReps:         req.IncorrectReps,
		PostureAccuracy:       req.PostureAccuracy,
		MisalignmentsCount:    req.MisalignmentsCount,
		IncorrectFormAlerts:   req.IncorrectFormAlerts,
		AverageJointDeviation: req.AverageJointDeviation,
	}
	metrics := sess.metrics
	record := sess.toRecord()
	sess.mu.Unlock()

	rating := performanceRating(metrics)

	repo, err := s.workoutRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	record.PerformanceRating = string(rating)
	if err := repo.Sessions.UpdateSessionMetrics(ctx, record); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to persist session metrics")
		return nil, err
	}

	s.cacheMetrics(ctx, sessionID, metrics)

	return &workout.FeedbackResponse{
		SessionID:         sessionID,
		Metrics:           metrics,
		Feedback:          feedbackMessage(metrics, rating),
		PerformanceRating: rating,
		Alerts:            metricAlerts(metrics),
	}, nil
}

// GetMetrics reads the live scoreboard. A running session answers from
// memory; an ended or restarted one falls back to the cache, then the
// database.
func (s *workoutService) GetMetrics(ctx context.Context, sessionID string) (*workout.FeedbackResponse, error) {
	if sess, ok := s.lookupSession(sessionID); ok {
		sess.mu.Lock()
		metrics := sess.metrics
		sess.mu.Unlock()

		rating := performanceRating(metrics)
		return &workout.FeedbackResponse{
			SessionID:         sessionID,
			Metrics:           metrics,
			Feedback:          feedbackMessage(metrics, rating),
			PerformanceRating: rating,
			Alerts:            metricAlerts(metrics),
		}, nil
	}

	if s.metricsCache != nil {
		if metrics, err := s.metricsCache.GetSessionMetrics(ctx, sessionID); err == nil {
			rating := performanceRating(metrics)
			return &workout.FeedbackResponse{
				SessionID:         sessionID,
				Metrics:           metrics,
				Feedback:          feedbackMessage(metrics, rating),
				PerformanceRating: rating,
				Alerts:            metricAlerts(metrics),
			}, nil
		}
	}

	repo, err := s.workoutRepository.NewClient(false)
	if err != nil {
		return nil, workout.ErrSessionNotFound
	}

	record, err := repo.Sessions.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	metrics := entity.SessionMetrics{
		TotalReps:             record.TotalReps,
		CorrectReps:           record.CorrectReps,
		IncorrectReps:         record.IncorrectReps,
		PostureAccuracy:       record.PostureAccuracy,
		MisalignmentsCount:    record.MisalignmentsCount,
		IncorrectFormAlerts:   record.IncorrectFormAlerts,
		AverageJointDeviation: record.AverageJointDeviation,
	}
	rating := performanceRating(metrics)

	return &workout.FeedbackResponse{
		SessionID:         sessionID,
		Metrics:           metrics,
		Feedback:          feedbackMessage(metrics, rating),
		PerformanceRating: rating,
		Alerts:            metricAlerts(metrics),
	}, nil
}

func (s *workoutService) EndSession(ctx context.Context, sessionID string) (*workout.SessionSummary, error) {
	requestID := contextPkg.GetRequestID(ctx)

	sess, ok := s.lookupSession(sessionID)
	if !ok {
		return nil, s.classifyMissingSession(ctx, sessionID)
	}

	sess.mu.Lock()
	endedAt := time.Now()
	metrics := sess.metrics
	record := sess.toRecord()
	startedAt := sess.startedAt
	exercise := sess.exercise
	sess.mu.Unlock()

	rating := performanceRating(metrics)

	record.PerformanceRating = string(rating)
	record.EndedAt = &endedAt

	repo, err := s.workoutRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	if err := repo.Sessions.EndSession(ctx, record); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to persist session end")
		return nil, err
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if s.metricsCache != nil {
		if err := s.metricsCache.DeleteSessionMetrics(ctx, sessionID); err != nil {
			s.log.WithFields(logrus.Fields{
				"session_id": sessionID,
				"error":      err.Error(),
			}).Warn("Failed to evict cached session metrics")
		}
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": sessionID,
		"total_reps": metrics.TotalReps,
		"rating":     string(rating),
	}).Info("Workout session ended")

	return &workout.SessionSummary{
		SessionID:             sessionID,
		Exercise:              exercise.String(),
		TotalReps:             metrics.TotalReps,
		CorrectReps:           metrics.CorrectReps,
		IncorrectReps:         metrics.IncorrectReps,
		PostureAccuracy:       metrics.PostureAccuracy,
		MisalignmentsCount:    metrics.MisalignmentsCount,
		IncorrectFormAlerts:   metrics.IncorrectFormAlerts,
		SessionDuration:       int(endedAt.Sub(startedAt).Seconds()),
		AverageJointDeviation: metrics.AverageJointDeviation,
		PerformanceRating:     rating,
		StartedAt:             startedAt,
		EndedAt:               endedAt,
	}, nil
}

// resolveKeypoints prefers keypoints already extracted upstream; a raw image
// frame is delegated to the injected pose provider.
func (s *workoutService) resolveKeypoints(requestID string, payload workout.FramePayload) (entity.Keypoints, error) {
	if len(payload.Keypoints) > 0 {
		return payload.Keypoints, nil
	}

	if payload.Frame == "" {
		return nil, workout.ErrEmptyFrame
	}

	frameData := payload.Frame
	// Strip a data URL prefix if the client sent one.
	if idx := strings.IndexByte(frameData, ','); idx >= 0 {
		frameData = frameData[idx+1:]
	}

	frame, err := base64.StdEncoding.DecodeString(frameData)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Frame payload is not valid base64")
		return nil, workout.ErrEmptyFrame
	}

	keypoints, err := s.poseProvider.DetectKeypoints(frame)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Pose estimation failed")
		return nil, workout.ErrPoseServiceUnavailable
	}

	return keypoints, nil
}

func (s *workoutService) cacheMetrics(ctx context.Context, sessionID string, metrics entity.SessionMetrics) {
	if s.metricsCache == nil {
		return
	}

	if err := s.metricsCache.SetSessionMetrics(ctx, sessionID, metrics, metricsCacheTTL); err != nil {
		// Cache is best effort; live state stays authoritative.
		s.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("Failed to cache session metrics")
	}
}

func (s *workoutService) classifyMissingSession(ctx context.Context, sessionID string) error {
	repo, err := s.workoutRepository.NewClient(false)
	if err != nil {
		return workout.ErrSessionNotFound
	}

	record, err := repo.Sessions.GetSessionByID(ctx, sessionID)
	if err != nil {
		return workout.ErrSessionNotFound
	}

	if record.EndedAt != nil {
		return workout.ErrSessionAlreadyEnded
	}
	return workout.ErrSessionNotFound
}

func (sess *liveSession) toRecord() entity.WorkoutSession {
	return entity.WorkoutSession{
		ID:                    sess.id,
		UserID:                sess.userID,
		Exercise:              sess.exercise.String(),
		TotalReps:             sess.metrics.TotalReps,
		CorrectReps:           sess.metrics.CorrectReps,
		IncorrectReps:         sess.metrics.IncorrectReps,
		PostureAccuracy:       sess.metrics.PostureAccuracy,
		MisalignmentsCount:    sess.metrics.MisalignmentsCount,
		IncorrectFormAlerts:   sess.metrics.IncorrectFormAlerts,
		AverageJointDeviation: sess.metrics.AverageJointDeviation,
		PerformanceRating:     string(performanceRating(sess.metrics)),
		StartedAt:             sess.startedAt,
	}
}
