package professional

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"buildmart/internal/auth"
	"buildmart/internal/domain"
	apperrors "buildmart/internal/errors"
	"buildmart/internal/validation"
)

type Repository interface {
	Insert(ctx context.Context, p domain.Professional) (uint, error)
	FindByID(ctx context.Context, id uint) (*domain.Professional, error)
	Search(ctx context.Context, profession domain.Role, city string) ([]domain.Professional, error)
}

type Controller struct {
	repo      Repository
	validator *validation.Validator
	logger    *zap.Logger
}

func NewController(repo Repository, validator *validation.Validator, logger *zap.Logger) *Controller {
	return &Controller{
		repo:      repo,
		validator: validator,
		logger:    logger,
	}
}

func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		c.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var req CreateProfessionalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validator.Validate(req); err != nil {
		if ve, ok := apperrors.IsValidationError(err); ok {
			c.writeValidationError(w, ve.Message, ve.Details...)
			return
		}
		c.logger.Error("failed to validate request", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "an unexpected error occurred"})
		return
	}

	profession, _ := domain.ParseRole(req.Profession)
	id, err := c.repo.Insert(r.Context(), domain.Professional{
		UserID:     claims.UserID,
		Profession: profession,
		Company:    req.Company,
		City:       req.City,
		Bio:        req.Bio,
	})
	if err != nil {
		c.logger.Error("failed to create professional", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "an unexpected error occurred"})
		return
	}

	created, err := c.repo.FindByID(r.Context(), id)
	if err != nil {
		c.logger.Error("failed to load created professional", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "an unexpected error occurred"})
		return
	}

	c.writeJSON(w, http.StatusCreated, toDTO(created))
}

func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.writeValidationError(w, "invalid professional id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return
	}

	p, err := c.repo.FindByID(r.Context(), uint(id))
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		c.logger.Error("failed to load professional", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "an unexpected error occurred"})
		return
	}

	c.writeJSON(w, http.StatusOK, toDTO(p))
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	profession := domain.Role(r.URL.Query().Get("profession"))
	if profession != "" {
		if _, ok := domain.ParseRole(string(profession)); !ok {
			c.writeValidationError(w, "invalid profession filter", apperrors.ValidationDetail{
				Field:   "profession",
				Message: "unknown profession",
			})
			return
		}
	}
	city := r.URL.Query().Get("city")

	professionals, err := c.repo.Search(r.Context(), profession, city)
	if err != nil {
		c.logger.Error("failed to search professionals", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "an unexpected error occurred"})
		return
	}

	out := make([]ProfessionalDTO, len(professionals))
	for i := range professionals {
		out[i] = toDTO(&professionals[i])
	}
	c.writeJSON(w, http.StatusOK, out)
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
