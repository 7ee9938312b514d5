package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"buildmart/internal/auth"
	"buildmart/internal/domain"
	apperrors "buildmart/internal/errors"
	"buildmart/internal/material/service"
	"buildmart/internal/validation"
)

type MaterialRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	Category   string `json:"category" validate:"required,max=100"`
	Unit       string `json:"unit" validate:"required,max=32"`
	PriceCents int64  `json:"priceCents" validate:"required,gt=0"`
	Stock      int    `json:"stock" validate:"min=0"`
	IsActive   bool   `json:"isActive"`
}

type MaterialResponse struct {
	ID         uint      `json:"id"`
	DealerID   uint      `json:"dealerId"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Unit       string    `json:"unit"`
	PriceCents int64     `json:"priceCents"`
	Stock      int       `json:"stock"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toMaterialResponse(m *domain.Material) MaterialResponse {
	return MaterialResponse{
		ID:         m.ID,
		DealerID:   m.DealerID,
		Name:       m.Name,
		Category:   m.Category,
		Unit:       m.Unit,
		PriceCents: m.PriceCents,
		Stock:      m.Stock,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

type MaterialController struct {
	catalog   *service.CatalogService
	validator *validation.Validator
	logger    *zap.Logger
}

func NewMaterialController(catalog *service.CatalogService, validator *validation.Validator, logger *zap.Logger) *MaterialController {
	return &MaterialController{
		catalog:   catalog,
		validator: validator,
		logger:    logger,
	}
}

func (c *MaterialController) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}

	req, ok := c.decodeRequest(w, r)
	if !ok {
		return
	}

	material, err := c.catalog.Create(r.Context(), claims.UserID, toInput(req))
	if err != nil {
		c.handleServiceError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, toMaterialResponse(material))
}

func (c *MaterialController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := c.materialID(w, r)
	if !ok {
		return
	}

	material, err := c.catalog.GetByID(r.Context(), id)
	if err != nil {
		c.handleServiceError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toMaterialResponse(material))
}

func (c *MaterialController) List(w http.ResponseWriter, r *http.Request) {
	var dealerID uint
	if raw := r.URL.Query().Get("dealerId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid dealerId filter", []apperrors.ValidationDetail{
				{Field: "dealerId", Message: "must be a positive integer"},
			})
			return
		}
		dealerID = uint(parsed)
	}
	category := r.URL.Query().Get("category")

	materials, err := c.catalog.Search(r.Context(), dealerID, category)
	if err != nil {
		c.handleServiceError(w, err)
		return
	}

	out := make([]MaterialResponse, len(materials))
	for i := range materials {
		out[i] = toMaterialResponse(&materials[i])
	}
	c.writeJSON(w, http.StatusOK, out)
}

func (c *MaterialController) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}

	id, ok := c.materialID(w, r)
	if !ok {
		return
	}

	req, ok := c.decodeRequest(w, r)
	if !ok {
		return
	}

	material, err := c.catalog.Update(r.Context(), claims.UserID, claims.Role, id, toInput(req))
	if err != nil {
		c.handleServiceError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toMaterialResponse(material))
}

func (c *MaterialController) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}

	id, ok := c.materialID(w, r)
	if !ok {
		return
	}

	if err := c.catalog.Delete(r.Context(), claims.UserID, claims.Role, id); err != nil {
		c.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toInput(req MaterialRequest) service.MaterialInput {
	return service.MaterialInput{
		Name:       req.Name,
		Category:   req.Category,
		Unit:       req.Unit,
		PriceCents: req.PriceCents,
		Stock:      req.Stock,
		IsActive:   req.IsActive,
	}
}

func (c *MaterialController) decodeRequest(w http.ResponseWriter, r *http.Request) (MaterialRequest, bool) {
	var req MaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", []apperrors.ValidationDetail{
			{Field: "body", Message: "request body must be valid JSON"},
		})
		return req, false
	}

	if err := c.validator.Validate(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message, ve.Details)
		return req, false
	}

	return req, true
}

func (c *MaterialController) materialID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid material id", []apperrors.ValidationDetail{
			{Field: "id", Message: "id must be a positive integer"},
		})
		return 0, false
	}
	return uint(id), true
}

func (c *MaterialController) handleServiceError(w http.ResponseWriter, err error) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
		return
	}
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message, ve.Details)
		return
	}
	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeError(w, http.StatusConflict, "CONFLICT", err.Error(), nil)
		return
	}
	if _, ok := apperrors.IsForbiddenError(err); ok {
		c.writeError(w, http.StatusForbidden, "FORBIDDEN", err.Error(), nil)
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

func (c *MaterialController) writeError(w http.ResponseWriter, status int, code, message string, details []apperrors.ValidationDetail) {
	c.writeJSON(w, status, errorResponse{
		Error:   code,
		Message: message,
		Details: details,
	})
}

func (c *MaterialController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
