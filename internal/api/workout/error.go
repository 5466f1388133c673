package workout

import (
	"RehabSense/pkg/response"
	"net/http"
)

var (
	ErrSessionNotFound        = response.NewError(http.StatusNotFound, "session not found")
	ErrSessionAlreadyEnded    = response.NewError(http.StatusConflict, "session already ended")
	ErrInvalidExercise        = response.NewError(http.StatusBadRequest, "unsupported exercise type")
	ErrEmptyFrame             = response.NewError(http.StatusBadRequest, "frame carries neither keypoints nor image data")
	ErrPoseServiceUnavailable = response.NewError(http.StatusServiceUnavailable, "pose estimation service unavailable")
	ErrInternalServerError    = response.NewError(http.StatusInternalServerError, "internal server error")
)
