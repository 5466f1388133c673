package workoutRepository

import (
	"RehabSense/internal/api/workout"
	"RehabSense/internal/entity"
	contextPkg "RehabSense/pkg/context"
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ISession interface {
	CreateSession(ctx context.Context, session entity.WorkoutSession) error
	GetSessionByID(ctx context.Context, id string) (entity.WorkoutSession, error)
	UpdateSessionMetrics(ctx context.Context, session entity.WorkoutSession) error
	EndSession(ctx context.Context, session entity.WorkoutSession) error
}

type sessionRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

func (r *sessionRepository) CreateSession(ctx context.Context, session entity.WorkoutSession) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":                      session.ID,
		"user_id":                 session.UserID,
		"exercise":                session.Exercise,
		"total_reps":              session.TotalReps,
		"correct_reps":            session.CorrectReps,
		"incorrect_reps":          session.IncorrectReps,
		"posture_accuracy":        session.PostureAccuracy,
		"misalignments_count":     session.MisalignmentsCount,
		"incorrect_form_alerts":   session.IncorrectFormAlerts,
		"average_joint_deviation": session.AverageJointDeviation,
		"performance_rating":      session.PerformanceRating,
		"started_at":              session.StartedAt,
	}

	query, args, err := sqlx.Named(queryCreateSession, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateSession")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating workout session")
		return err
	}

	return nil
}

func (r *sessionRepository) GetSessionByID(ctx context.Context, id string) (entity.WorkoutSession, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var session entity.WorkoutSession

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetSessionByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSessionByID named query preparation err")
		return entity.WorkoutSession{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&session); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"session_id": id,
			}).Debug("GetSessionByID no session found")
			return entity.WorkoutSession{}, workout.ErrSessionNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSessionByID execution err")
		return entity.WorkoutSession{}, err
	}

	return session, nil
}

func (r *sessionRepository) UpdateSessionMetrics(ctx context.Context, session entity.WorkoutSession) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":                      session.ID,
		"total_reps":              session.TotalReps,
		"correct_reps":            session.CorrectReps,
		"incorrect_reps":          session.IncorrectReps,
		"posture_accuracy":        session.PostureAccuracy,
		"misalignments_count":     session.MisalignmentsCount,
		"incorrect_form_alerts":   session.IncorrectFormAlerts,
		"average_joint_deviation": session.AverageJointDeviation,
		"performance_rating":      session.PerformanceRating,
	}

	query, args, err := sqlx.Named(queryUpdateSessionMetrics, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateSessionMetrics named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating session metrics")
		return err
	}

	return nil
}

func (r *sessionRepository) EndSession(ctx context.Context, session entity.WorkoutSession) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":                      session.ID,
		"total_reps":              session.TotalReps,
		"correct_reps":            session.CorrectReps,
		"incorrect_reps":          session.IncorrectReps,
		"posture_accuracy":        session.PostureAccuracy,
		"misalignments_count":     session.MisalignmentsCount,
		"incorrect_form_alerts":   session.IncorrectFormAlerts,
		"average_joint_deviation": session.AverageJointDeviation,
		"performance_rating":      session.PerformanceRating,
		"ended_at":                session.EndedAt,
	}

	query, args, err := sqlx.Named(queryEndSession, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("EndSession named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when ending workout session")
		return err
	}

	return nil
}
