package categories

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/storelab/catalog-service/app/api"
	"github.com/storelab/catalog-service/models"
)

type CategoryStore interface {
	Create(category *models.Category) error
	All() ([]models.Category, error)
}

type CategoryHandler struct {
	repo CategoryStore
	log  *zap.Logger
}

func NewCategoryHandler(r CategoryStore, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		repo: r,
		log:  log,
	}
}

// HandleAdd handles POST /category/add.
func (h *CategoryHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string `json:"catName"`
		Description string `json:"catDesc"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	category := &models.Category{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := h.repo.Create(category); err != nil {
		if errors.Is(err, models.ErrConstraint) {
			api.WriteError(w, http.StatusConflict, "Failed to add the category")
			return
		}
		h.log.Error("create category failed", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "Failed to add the category")
		return
	}

	api.WriteData(w, http.StatusCreated, category)
}

// HandleGetAll handles GET /category/all.
func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.All()
	if err != nil {
		h.log.Error("list categories failed", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "Failed to get all the category")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	api.WriteData(w, http.StatusOK, categories)
}
