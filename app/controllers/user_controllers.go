package controllers

import (
	"net/http"

	"github.com/freshmart/api/app/models"
	"github.com/freshmart/api/app/services"
	"github.com/freshmart/api/pkg/response"
)

// UserController serves the admin-only user listing.
type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

// All returns every registered user without password hashes.
func (c *UserController) All(w http.ResponseWriter, r *http.Request) {
	users, err := c.service.All(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	public := make([]models.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}

	response.WithData(w, http.StatusOK, "All users fetched successfully", "data", public)
}
