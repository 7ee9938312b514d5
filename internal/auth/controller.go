package auth

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"buildmart/internal/domain"
	apperrors "buildmart/internal/errors"
	"buildmart/internal/validation"
)

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	UserType string  `json:"userType" validate:"required"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Controller struct {
	service   *Service
	validator *validation.Validator
	logger    *zap.Logger
}

func NewController(service *Service, validator *validation.Validator, logger *zap.Logger) *Controller {
	return &Controller{
		service:   service,
		validator: validator,
		logger:    logger,
	}
}

func (c *Controller) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", []apperrors.ValidationDetail{
			{Field: "body", Message: "request body must be valid JSON"},
		})
		return
	}

	if err := c.validator.Validate(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message, ve.Details)
		return
	}

	role, ok := domain.ParseRole(req.UserType)
	if !ok {
		c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", []apperrors.ValidationDetail{
			{Field: "UserType", Message: "unknown user type"},
		})
		return
	}

	user, token, err := c.service.Register(r.Context(), RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
		Phone:    req.Phone,
	})
	if err != nil {
		c.handleServiceError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, toAuthResponse(user, token))
}

func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", []apperrors.ValidationDetail{
			{Field: "body", Message: "request body must be valid JSON"},
		})
		return
	}

	if err := c.validator.Validate(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message, ve.Details)
		return
	}

	user, token, err := c.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		c.handleServiceError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toAuthResponse(user, token))
}

// Me returns the profile of the authenticated caller.
func (c *Controller) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}

	user, err := c.service.Profile(r.Context(), claims.UserID)
	if err != nil {
		c.handleServiceError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	})
}

func toAuthResponse(user *domain.User, token string) AuthResponse {
	return AuthResponse{
		Token: token,
		User: UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  string(user.Role),
		},
	}
}

func (c *Controller) handleServiceError(w http.ResponseWriter, err error) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
		return
	}
	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeError(w, http.StatusConflict, "CONFLICT", err.Error(), nil)
		return
	}
	if _, ok := apperrors.IsForbiddenError(err); ok {
		// Login failures come back as 401, not 403.
		c.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", err.Error(), nil)
		return
	}
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message, ve.Details)
		return
	}

	c.logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", nil)
}

type errorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}

func (c *Controller) writeError(w http.ResponseWriter, status int, code, message string, details []apperrors.ValidationDetail) {
	c.writeJSON(w, status, errorResponse{
		Error:   code,
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
