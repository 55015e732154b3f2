package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshmart/api/app/repositories"
	"github.com/freshmart/api/app/services"
	"github.com/freshmart/api/pkg/bind"
	"github.com/freshmart/api/pkg/response"
)

// ProductController serves the catalog: admin product management plus the
// customer-facing browse and detail endpoints.
type ProductController struct {
	service *services.CatalogService
}

func NewProductController(service *services.CatalogService) *ProductController {
	return &ProductController{service: service}
}

type createProductInput struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Stock       int64   `json:"stock"`
}

// Create adds a new product under an existing category.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in createProductInput
	json.NewDecoder(r.Body).Decode(&in) //nolint:errcheck

	if in.Name == "" || in.Price == 0 || in.Category == "" {
		response.Message(w, http.StatusBadRequest, "Name, price, and category are required")
		return
	}
	if in.Price < 0 {
		response.Message(w, http.StatusBadRequest, "Price must be a positive number")
		return
	}
	if in.Stock < 0 {
		response.Message(w, http.StatusBadRequest, "Stock must be a non-negative number")
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(in.Category)
	if err != nil {
		respondError(w, services.ErrCategoryNotFound)
		return
	}

	product, err := c.service.CreateProduct(r.Context(), services.CreateProductParams{
		Name:        in.Name,
		Price:       in.Price,
		Category:    categoryID,
		Description: in.Description,
		Stock:       in.Stock,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	response.WithData(w, http.StatusCreated, "Product created successfully", "product", product)
}

// Browse returns the full catalog as a raw array. An empty catalog is
// reported as 404, matching the public contract.
func (c *ProductController) Browse(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.ListProducts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	if len(products) == 0 {
		response.Message(w, http.StatusNotFound, "No products found")
		return
	}

	response.JSON(w, http.StatusOK, products)
}

// Detail returns one product with its category populated.
func (c *ProductController) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	detail, err := c.service.GetProduct(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"product": detail})
}

type modifyProductInput struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Stock       *int64   `json:"stock"`
}

// Modify applies a partial update. Each field is validated only when the
// patch carries it.
func (c *ProductController) Modify(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var in modifyProductInput
	json.NewDecoder(r.Body).Decode(&in) //nolint:errcheck

	if in.Price != nil && *in.Price <= 0 {
		response.Message(w, http.StatusBadRequest, "Price must be a positive number")
		return
	}
	if in.Stock != nil && *in.Stock < 0 {
		response.Message(w, http.StatusBadRequest, "Stock must be a non-negative number")
		return
	}

	patch := repositories.ProductPatch{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Stock:       in.Stock,
	}
	if in.Category != nil {
		categoryID, err := primitive.ObjectIDFromHex(*in.Category)
		if err != nil {
			respondError(w, services.ErrCategoryNotFound)
			return
		}
		patch.Category = &categoryID
	}

	product, err := c.service.ModifyProduct(r.Context(), id, patch)
	if err != nil {
		respondError(w, err)
		return
	}

	response.WithData(w, http.StatusOK, "Product updated successfully", "product", product)
}

type restockInput struct {
	Quantity int64 `json:"quantity" validate:"required,integer,gt=0"`
}

// Restock adds quantity units to a product's stock.
func (c *ProductController) Restock(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var in restockInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.service.RestockProduct(r.Context(), id, in.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}

	response.WithData(w, http.StatusOK, "Product restocked successfully", "product", product)
}

// Delete removes a product permanently. Orders keep their product IDs;
// historical references are allowed to dangle.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	if err := c.service.DeleteProduct(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	response.Message(w, http.StatusOK, "Product deleted successfully")
}

// productID parses the {id} path parameter, writing a 400 on bad input.
func productID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid product ID")
		return primitive.NilObjectID, false
	}
	return id, true
}
