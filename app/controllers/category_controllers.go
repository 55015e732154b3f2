package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/freshmart/api/app/services"
	"github.com/freshmart/api/pkg/response"
)

// CategoryController serves admin category management.
type CategoryController struct {
	service *services.CatalogService
}

func NewCategoryController(service *services.CatalogService) *CategoryController {
	return &CategoryController{service: service}
}

// Create adds a new category. Presence is checked here; duplicate and
// length checks happen in the service, in that order.
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	json.NewDecoder(r.Body).Decode(&in) //nolint:errcheck

	if in.Name == "" {
		response.Message(w, http.StatusBadRequest, "Category name is required")
		return
	}

	category, err := c.service.CreateCategory(r.Context(), in.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	response.WithData(w, http.StatusCreated, "Category created successfully", "category", category)
}
