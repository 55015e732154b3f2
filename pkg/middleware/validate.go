package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/freshmart/api/pkg/response"
)

// RegisterInput is the decoded registration body, attached to the request
// context by ValidateRegister.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// OrderLine is one requested line item of an order body.
type OrderLine struct {
	Product  string  `json:"product"`
	Quantity float64 `json:"quantity"`
}

// OrderInput is the decoded place-order body, attached to the request
// context by ValidateOrder.
type OrderInput struct {
	Products []OrderLine `json:"products"`
}

type registerCtxKey struct{}
type orderCtxKey struct{}

// RegisterInputFromCtx returns the body decoded by ValidateRegister.
func RegisterInputFromCtx(ctx context.Context) (RegisterInput, bool) {
	in, ok := ctx.Value(registerCtxKey{}).(RegisterInput)
	return in, ok
}

// OrderInputFromCtx returns the body decoded by ValidateOrder.
func OrderInputFromCtx(ctx context.Context) (OrderInput, bool) {
	in, ok := ctx.Value(orderCtxKey{}).(OrderInput)
	return in, ok
}

// emailRE is a light RFC-5322-ish pattern; the address is lowercased before
// matching, as it is before storage and lookup.
var emailRE = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-z\-0-9]+\.)+[a-z]{2,}))$`)

// ValidEmail reports whether email passes the registration format check.
func ValidEmail(email string) bool {
	return emailRE.MatchString(strings.ToLower(email))
}

// ValidateRegister checks the registration body shape before the handler
// runs. Check order is part of the contract: presence first (all missing
// fields reported together as an array), then email format. Duplicate-email
// and password-length checks belong to the handler, after these.
func ValidateRegister(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in RegisterInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			response.Messages(w, http.StatusBadRequest, []string{"Email is required", "Password is required"})
			return
		}

		var errs []string
		if in.Email == "" {
			errs = append(errs, "Email is required")
		}
		if in.Password == "" {
			errs = append(errs, "Password is required")
		}
		if len(errs) > 0 {
			response.Messages(w, http.StatusBadRequest, errs)
			return
		}

		if !ValidEmail(in.Email) {
			response.Message(w, http.StatusBadRequest, "Invalid email format")
			return
		}

		ctx := context.WithValue(r.Context(), registerCtxKey{}, in)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ValidateOrder checks the place-order body shape: products must be a
// non-empty array whose items each carry a product reference and a
// positive numeric quantity. Quantity positivity is enforced here only;
// the placement flow checks sufficiency against stock.
func ValidateOrder(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in OrderInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			response.Message(w, http.StatusBadRequest, "Products must be a non-empty array")
			return
		}

		if len(in.Products) == 0 {
			response.Message(w, http.StatusBadRequest, "Products must be a non-empty array")
			return
		}

		for _, item := range in.Products {
			if item.Product == "" || item.Quantity == 0 {
				response.Message(w, http.StatusBadRequest, "Each product must have a product ID and quantity")
				return
			}
			if item.Quantity < 0 {
				response.Message(w, http.StatusBadRequest, "Quantity must be a number greater than 0")
				return
			}
		}

		ctx := context.WithValue(r.Context(), orderCtxKey{}, in)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
