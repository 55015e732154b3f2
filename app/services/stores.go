package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshmart/api/app/models"
	"github.com/freshmart/api/app/repositories"
)

// The store interfaces mirror the repository surface the services use.
// Tests substitute in-memory fakes; production wiring passes the mongo
// repositories.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	All(ctx context.Context) ([]models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
	AppendOrder(ctx context.Context, userID, orderID primitive.ObjectID) error
}

type CategoryStore interface {
	Create(ctx context.Context, category *models.Category) error
	FindByName(ctx context.Context, name string) (*models.Category, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
}

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	All(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, patch repositories.ProductPatch) error
	IncrementStock(ctx context.Context, id primitive.ObjectID, quantity int64) error
	DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int64) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
}

// TxRunner runs fn inside a unit-of-work boundary: every store call made
// through fn's context commits or rolls back together.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Mailer delivers outbound account email.
type Mailer interface {
	SendPasswordReset(email, token string) error
}
