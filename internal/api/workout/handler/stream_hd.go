package workoutHandler

import (
	"encoding/json"
	"time"

	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"

	"RehabSense/internal/api/workout"
	contextPkg "RehabSense/pkg/context"
	"RehabSense/pkg/log"
)

// handleFrameStream is the per-connection frame loop. Frames are processed
// strictly in arrival order on this goroutine, which is what keeps the
// session's state machines consistent.
func (h *WorkoutHandler) handleFrameStream(c *websocket.Conn) {
	sessionID := c.Params("sessionId")
	ctx := contextPkg.WithRequestID(context.Background(), sessionID)

	h.log.Infof("Frame stream client connected for session %s", sessionID)
	defer h.log.Infof("Frame stream client disconnected for session %s", sessionID)

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	maxReadTimeout := 60 * time.Second

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Frame stream error: %v", err)
			} else {
				h.log.Info("Frame stream connection closed")
			}
			break
		}

		if messageType != websocket.TextMessage {
			h.log.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		var msg workout.StreamMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			if writeErr := c.WriteJSON(workout.StreamErrorResponse{
				Type:  workout.MessageTypeError,
				Error: "invalid message format",
			}); writeErr != nil {
				h.log.Errorf("Error sending error response: %v", writeErr)
				break
			}
			continue
		}

		if msg.Type != workout.MessageTypeFrame {
			h.log.Warnf("Ignoring unexpected stream message type: %s", msg.Type)
			continue
		}

		result, err := h.workoutService.ProcessFrame(ctx, sessionID, msg.Data)
		if err != nil {
			log.ErrorWithTraceID(log.Fields{
				"session_id": sessionID,
				"error":      err.Error(),
			}, "Error processing frame")
			if writeErr := c.WriteJSON(workout.StreamErrorResponse{
				Type:  workout.MessageTypeError,
				Error: err.Error(),
			}); writeErr != nil {
				h.log.Errorf("Error sending error response: %v", writeErr)
				break
			}
			continue
		}

		if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			h.log.Errorf("Error setting write deadline: %v", err)
			break
		}

		if err := c.WriteJSON(map[string]interface{}{
			"type": workout.MessageTypeFeedback,
			"data": result,
		}); err != nil {
			h.log.Errorf("Error writing feedback message: %v", err)
			break
		}

		if err := c.SetWriteDeadline(time.Time{}); err != nil {
			h.log.Errorf("Error resetting write deadline: %v", err)
			break
		}
	}
}
