// Package rest exposes the product operations as a JSON HTTP API.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	perrors "github.com/abgdnv/product-grpc/internal/errors"
	"github.com/abgdnv/product-grpc/internal/service"
	"github.com/abgdnv/product-grpc/pkg/web"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.ProductService
	logger  *slog.Logger
}

// NewHandler creates a new Handler backed by the given service.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "rest"),
	}
}

// productRequest is the body of create and update requests.
type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int32   `json:"quantity"`
}

// RegisterRoutes registers the HTTP routes for the product service.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to create product", "name", req.Name)

	created, err := h.service.Create(r.Context(), service.ProductCreateDto{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		h.respondServiceError(w, r, "Failed to create product", err)
		return
	}
	h.logger.InfoContext(r.Context(), "Product created", "id", created.Product.ID)
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}

	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, "Failed to retrieve product", err)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

// Update overwrites the product identified by the path ID.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	var req productRequest
	if !h.decode(w, r, &req) {
		return
	}

	updated, err := h.service.Update(r.Context(), service.ProductDto{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		h.respondServiceError(w, r, "Failed to update product", err)
		return
	}
	h.logger.InfoContext(r.Context(), "Product updated", "id", id)
	web.RespondJSON(w, h.logger, http.StatusOK, updated)
}

// DeleteByID deletes a product by its ID. A missing product still answers 200 with success=false.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.service.DeleteByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, "Failed to delete product", err)
		return
	}
	h.logger.InfoContext(r.Context(), "Delete processed", "id", id, "success", result.Success)
	web.RespondJSON(w, h.logger, http.StatusOK, result)
}

// FindAll returns one page of products. Missing page and size parameters are treated as 0.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	page, ok := web.ParseOptionalInt32(r, w, h.logger, "page")
	if !ok {
		return
	}
	size, ok := web.ParseOptionalInt32(r, w, h.logger, "size")
	if !ok {
		return
	}

	result, err := h.service.FindAll(r.Context(), page, size)
	if err != nil {
		h.respondServiceError(w, r, "Failed to fetch products", err)
		return
	}
	h.logger.DebugContext(r.Context(), "Listed products", "page", page, "size", size, "count", len(result.Products))
	web.RespondJSON(w, h.logger, http.StatusOK, result)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, message string, err error) {
	var notFound *perrors.NotFoundError
	if errors.As(err, &notFound) {
		h.logger.WarnContext(r.Context(), "Product not found", "id", notFound.ID)
		web.RespondError(w, h.logger, http.StatusNotFound, notFound.Error())
		return
	}
	h.logger.ErrorContext(r.Context(), message, "error", err)
	web.RespondError(w, h.logger, http.StatusInternalServerError, message)
}
