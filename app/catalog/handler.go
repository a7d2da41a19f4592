package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/storelab/catalog-service/app/api"
	"github.com/storelab/catalog-service/models"
)

const (
	defaultPage  = 1
	defaultLimit = 5
)

// ListResponse is the paginated listing envelope.
type ListResponse struct {
	Data  []models.ProductRow `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

type ProductStore interface {
	SlugExists(slug string) (bool, error)
	Create(p *models.Product) error
	CreateBatch(products []models.Product) ([]models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	List(offset, limit int, sort *models.ProductSort) ([]models.ProductRow, int64, error)
	Update(id uint, fields map[string]any) (int64, error)
	Delete(id uint) (int64, error)
}

type CatalogHandler struct {
	repo ProductStore
	log  *zap.Logger
}

func NewCatalogHandler(r ProductStore, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
		log:  log,
	}
}

// HandleAdd handles POST /product/add. The slug is always computed from the
// product name; a client-supplied slug is ignored.
func (h *CatalogHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string `json:"productName"`
		Description string `json:"description"`
		Price       int    `json:"price"`
		CategoryID  uint   `json:"categoryID"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	slug, err := UniqueSlug(h.repo, input.Name)
	if err != nil {
		h.log.Error("slug probe failed", zap.String("productName", input.Name), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "failed to create the product")
		return
	}

	product := &models.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Slug:        slug,
		CategoryID:  input.CategoryID,
	}
	if err := h.repo.Create(product); err != nil {
		h.writeStoreError(w, err, "failed to create the product")
		return
	}

	api.WriteData(w, http.StatusCreated, product)
}

// HandleGetBySlug handles GET /product/{slug}.
func (h *CatalogHandler) HandleGetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.repo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			api.WriteError(w, http.StatusNotFound, "Failed to get product")
			return
		}
		h.log.Error("get product failed", zap.String("slug", slug), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "Failed to get product")
		return
	}

	api.WriteData(w, http.StatusOK, product)
}

// HandleUpdate handles PUT /product/update/{id}. The body is an arbitrary
// field overwrite; only known product fields are applied. Not-found is
// decided by the affected-row count of a single statement, not by a prior
// existence check.
func (h *CatalogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	fields := make(map[string]any, len(body))
	for name, value := range body {
		if column, known := models.UpdatableColumns[name]; known {
			fields[column] = value
		}
	}
	if len(fields) == 0 {
		api.WriteError(w, http.StatusBadRequest, "No updatable fields in request body")
		return
	}

	rows, err := h.repo.Update(id, fields)
	if err != nil {
		h.writeStoreError(w, err, "Failed to update product")
		return
	}
	if rows == 0 {
		api.WriteError(w, http.StatusNotFound, "Cannot find product with given ID.")
		return
	}

	api.WriteData(w, http.StatusOK, "Product has been updated")
}

// HandleDelete handles DELETE /product/delete/{id}.
func (h *CatalogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	rows, err := h.repo.Delete(id)
	if err != nil {
		h.writeStoreError(w, err, "Failed to delete product")
		return
	}
	if rows == 0 {
		api.WriteError(w, http.StatusNotFound, "Cannot find product with given ID.")
		return
	}

	api.WriteData(w, http.StatusOK, "Product has been deleted")
}

// HandleList handles GET /product with page, limit, sortBy and sortOrder
// query parameters.
func (h *CatalogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := defaultPage
	limit := defaultLimit

	if pStr := r.URL.Query().Get("page"); pStr != "" {
		if p, err := strconv.Atoi(pStr); err == nil && p > 0 {
			page = p
		}
	}
	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil && l > 0 {
			limit = l
		}
	}

	var sort *models.ProductSort
	if sortBy := r.URL.Query().Get("sortBy"); sortBy != "" {
		column, ok := models.SortableColumns[sortBy]
		if !ok {
			api.WriteError(w, http.StatusBadRequest, "Invalid sortBy field")
			return
		}
		sort = &models.ProductSort{
			Column: column,
			Desc:   strings.EqualFold(r.URL.Query().Get("sortOrder"), "desc"),
		}
	}

	offset := (page - 1) * limit

	rows, total, err := h.repo.List(offset, limit, sort)
	if err != nil {
		h.log.Error("list products failed", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "Error while getting products.")
		return
	}
	if rows == nil {
		rows = []models.ProductRow{}
	}

	api.WriteJSON(w, http.StatusOK, ListResponse{
		Data:  rows,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// HandleBulkAdd handles POST /product/addProducts. Bulk items carry "name"
// rather than "productName". Slugs are generated sequentially against the
// store; the insert itself is a single all-or-nothing statement.
func (h *CatalogHandler) HandleBulkAdd(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Products []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Price       int    `json:"price"`
			CategoryID  uint   `json:"categoryID"`
		} `json:"products"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid or empty product array")
		return
	}
	if len(input.Products) == 0 {
		api.WriteError(w, http.StatusBadRequest, "Invalid or empty product array")
		return
	}

	batch := make([]models.Product, 0, len(input.Products))
	for _, item := range input.Products {
		slug, err := UniqueSlug(h.repo, item.Name)
		if err != nil {
			h.log.Error("slug probe failed", zap.String("productName", item.Name), zap.Error(err))
			api.WriteError(w, http.StatusInternalServerError, "Failed to create products")
			return
		}
		batch = append(batch, models.Product{
			Name:        item.Name,
			Price:       item.Price,
			Description: item.Description,
			Slug:        slug,
			CategoryID:  item.CategoryID,
		})
	}

	created, err := h.repo.CreateBatch(batch)
	if err != nil {
		h.writeStoreError(w, err, "Failed to create products")
		return
	}

	api.WriteData(w, http.StatusCreated, created)
}

// writeStoreError maps a repository write failure onto the response: 409 for
// integrity-constraint rejections, 500 for everything else.
func (h *CatalogHandler) writeStoreError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, models.ErrConstraint) {
		api.WriteError(w, http.StatusConflict, msg)
		return
	}
	h.log.Error("store write failed", zap.Error(err))
	api.WriteError(w, http.StatusInternalServerError, msg)
}

func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid product ID")
		return 0, false
	}
	return uint(id), true
}
