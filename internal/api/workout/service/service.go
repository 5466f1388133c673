package workoutService

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"RehabSense/internal/analysis"
	"RehabSense/internal/api/workout"
	workoutRepository "RehabSense/internal/api/workout/repository"
	"RehabSense/internal/entity"
	posePkg "RehabSense/pkg/pose"
	redisPkg "RehabSense/pkg/redis"
	"RehabSense/pkg/utils"
)

type IWorkoutService interface {
	StartSession(ctx context.Context, req workout.SessionStartRequest) (*workout.SessionStartResponse, error)
	ProcessFrame(ctx context.Context, sessionID string, payload workout.FramePayload) (*workout.FrameResult, error)
	UpdateMetrics(ctx context.Context, sessionID string, req workout.MetricsUpdateRequest) (*workout.FeedbackResponse, error)
	GetMetrics(ctx context.Context, sessionID string) (*workout.FeedbackResponse, error)
	EndSession(ctx context.Context, sessionID string) (*workout.SessionSummary, error)
}

// liveSession owns the per-session analysis state. Frames for one session are
// serialized by the connection goroutine; the mutex only guards against REST
// calls racing the stream.
type liveSession struct {
	mu sync.Mutex

	id        string
	userID    string
	exercise  entity.ExerciseType
	startedAt time.Time

	analyzer *analysis.PostureAnalyzer
	counter  *analysis.RepCounter
	metrics  entity.SessionMetrics
}

type workoutService struct {
	log               *logrus.Logger
	workoutRepository workoutRepository.Repository
	poseProvider      posePkg.IPoseProvider
	metricsCache      redisPkg.IRedis
	utils             utils.IUtils

	mu       sync.RWMutex
	sessions map[string]*liveSession
}

func New(
	log *logrus.Logger,
	repo workoutRepository.Repository,
	poseProvider posePkg.IPoseProvider,
	metricsCache redisPkg.IRedis,
	utils utils.IUtils,
) IWorkoutService {
	return &workoutService{
		log:               log,
		workoutRepository: repo,
		poseProvider:      poseProvider,
		metricsCache:      metricsCache,
		utils:             utils,
		sessions:          make(map[string]*liveSession),
	}
}

func (s *workoutService) lookupSession(id string) (*liveSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}
