package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"buildmart/internal/auth"
	"buildmart/internal/domain"
	apperrors "buildmart/internal/errors"
)

type Repository interface {
	FindByUser(ctx context.Context, userID uint) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) error
}

type NotificationResponse struct {
	ID        uint      `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type Controller struct {
	repo   Repository
	logger *zap.Logger
}

func NewController(repo Repository, logger *zap.Logger) *Controller {
	return &Controller{repo: repo, logger: logger}
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		c.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	notifications, err := c.repo.FindByUser(r.Context(), claims.UserID)
	if err != nil {
		c.logger.Error("failed to list notifications", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "an unexpected error occurred"})
		return
	}

	out := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		out[i] = NotificationResponse{
			ID:        n.ID,
			Kind:      n.Kind,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
	}
	c.writeJSON(w, http.StatusOK, out)
}

func (c *Controller) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		c.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id must be a positive integer"})
		return
	}

	if err := c.repo.MarkRead(r.Context(), uint(id), claims.UserID); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		c.logger.Error("failed to mark notification read", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "an unexpected error occurred"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
