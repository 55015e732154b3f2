package controllers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshmart/api/app/services"
	"github.com/freshmart/api/pkg/middleware"
	"github.com/freshmart/api/pkg/response"
)

// OrderController serves order placement and the per-user order history.
type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// Place runs the order-placement flow for the authenticated user. The
// shape validator has already decoded the body and checked quantities.
func (c *OrderController) Place(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromCtx(r.Context())
	if !ok {
		response.Message(w, http.StatusUnauthorized, "Please login!")
		return
	}
	in, ok := middleware.OrderInputFromCtx(r.Context())
	if !ok {
		response.Message(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	lines := make([]services.OrderLine, 0, len(in.Products))
	for _, item := range in.Products {
		productID, err := primitive.ObjectIDFromHex(item.Product)
		if err != nil {
			// A malformed ID cannot match any product.
			respondError(w, services.ErrProductNotFound)
			return
		}
		lines = append(lines, services.OrderLine{
			Product:  productID,
			Quantity: int64(item.Quantity),
		})
	}

	order, err := c.service.Place(r.Context(), user.ID, lines)
	if err != nil {
		respondError(w, err)
		return
	}

	response.WithData(w, http.StatusCreated, "Order placed successfully", "order", order)
}

// MyOrders returns the authenticated user's order history as a raw array.
// An empty history is reported as 404, matching the public contract.
func (c *OrderController) MyOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromCtx(r.Context())
	if !ok {
		response.Message(w, http.StatusUnauthorized, "Please login!")
		return
	}

	orders, err := c.service.ListForUser(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	if len(orders) == 0 {
		response.Message(w, http.StatusNotFound, "No orders found for this user")
		return
	}

	response.JSON(w, http.StatusOK, orders)
}
