package workoutRepository

const (
	queryCreateSession = `
		INSERT INTO workout_sessions (
			id, user_id, exercise, total_reps, correct_reps, incorrect_reps,
			posture_accuracy, misalignments_count, incorrect_form_alerts,
			average_joint_deviation, performance_rating, started_at
		) VALUES (
			:id, :user_id, :exercise, :total_reps, :correct_reps, :incorrect_reps,
			:posture_accuracy, :misalignments_count, :incorrect_form_alerts,
			:average_joint_deviation, :performance_rating, :started_at
		)
	`

	queryGetSessionByID = `
		SELECT
			id, user_id, exercise, total_reps, correct_reps, incorrect_reps,
			posture_accuracy, misalignments_count, incorrect_form_alerts,
			average_joint_deviation, performance_rating, started_at, ended_at
		FROM workout_sessions
		WHERE id = :id
	`

	queryUpdateSessionMetrics = `
		UPDATE workout_sessions
		SET
			total_reps = :total_reps,
			correct_reps = :correct_reps,
			incorrect_reps = :incorrect_reps,
			posture_accuracy = :posture_accuracy,
			misalignments_count = :misalignments_count,
			incorrect_form_alerts = :incorrect_form_alerts,
			average_joint_deviation = :average_joint_deviation,
			performance_rating = :performance_rating
		WHERE id = :id
	`

	queryEndSession = `
		UPDATE workout_sessions
		SET
			total_reps = :total_reps,
			correct_reps = :correct_reps,
			incorrect_reps = :incorrect_reps,
			posture_accuracy = :posture_accuracy,
			misalignments_count = :misalignments_count,
			incorrect_form_alerts = :incorrect_form_alerts,
			average_joint_deviation = :average_joint_deviation,
			performance_rating = :performance_rating,
			ended_at = :ended_at
		WHERE id = :id
	`
)
