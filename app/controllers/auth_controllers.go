package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/freshmart/api/app/services"
	"github.com/freshmart/api/pkg/middleware"
	"github.com/freshmart/api/pkg/response"
)

// AuthController serves registration, login and password recovery.
type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Register creates a user account. The registration validator has already
// decoded the body and checked presence and email format.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	in, ok := middleware.RegisterInputFromCtx(r.Context())
	if !ok {
		response.Message(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	user, err := c.service.Register(r.Context(), services.RegisterParams{
		Email:     in.Email,
		Password:  in.Password,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	response.WithData(w, http.StatusCreated, "User registered successfully", "newUser", user.Public())
}

// Login issues the access and refresh tokens.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	json.NewDecoder(r.Body).Decode(&in) //nolint:errcheck

	if in.Email == "" {
		response.Message(w, http.StatusBadRequest, "Email is required")
		return
	}
	if in.Password == "" {
		response.Message(w, http.StatusBadRequest, "Password is required")
		return
	}

	user, accessToken, refreshToken, err := c.service.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Login successful",
		"accessToken":  accessToken,
		"user":         user.Public(),
		"refreshToken": refreshToken,
	})
}

// ForgotPassword emails a password-reset link.
func (c *AuthController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	json.NewDecoder(r.Body).Decode(&in) //nolint:errcheck

	if in.Email == "" {
		response.Message(w, http.StatusBadRequest, "Email is required")
		return
	}

	if err := c.service.ForgotPassword(r.Context(), in.Email); err != nil {
		respondError(w, err)
		return
	}

	response.Message(w, http.StatusOK, "Password reset link sent to your email")
}

// ResetPassword sets a new password for the account with the given email.
func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email       string `json:"email"`
		NewPassword string `json:"newPassword"`
	}
	json.NewDecoder(r.Body).Decode(&in) //nolint:errcheck

	if in.Email == "" {
		response.Message(w, http.StatusBadRequest, "Email is required")
		return
	}
	if in.NewPassword == "" {
		response.Message(w, http.StatusBadRequest, "New password is required")
		return
	}

	if err := c.service.ResetPassword(r.Context(), in.Email, in.NewPassword); err != nil {
		respondError(w, err)
		return
	}

	response.Message(w, http.StatusOK, "Password reset successfully")
}
