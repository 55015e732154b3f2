package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshmart/api/app/models"
	"github.com/freshmart/api/app/repositories"
	"github.com/freshmart/api/pkg/logger"
	"github.com/freshmart/api/pkg/metrics"
)

// OrderLine is one requested (product, quantity) pair.
type OrderLine struct {
	Product  primitive.ObjectID
	Quantity int64
}

// OrderService implements the order-placement flow.
type OrderService struct {
	products ProductStore
	orders   OrderStore
	users    UserStore
	tx       TxRunner
}

func NewOrderService(products ProductStore, orders OrderStore, users UserStore, tx TxRunner) *OrderService {
	return &OrderService{products: products, orders: orders, users: users, tx: tx}
}

// Place runs the whole placement as one unit of work: per line item it
// loads the product, checks stock sufficiency against the requested
// quantity, decrements stock, and accumulates the total; then it inserts
// the order and appends its ID to the user's history. Any failure rolls
// everything back: no partial decrement, no orphan order, no dangling
// user reference.
//
// Line items are processed in request order, and each stock check observes
// the decrements of prior items, so the same product listed twice must be
// cumulatively satisfiable.
func (s *OrderService) Place(ctx context.Context, userID primitive.ObjectID, lines []OrderLine) (*models.Order, error) {
	var order *models.Order

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		var total float64
		items := make([]models.OrderItem, 0, len(lines))

		for _, line := range lines {
			product, err := s.products.FindByID(txCtx, line.Product)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return ErrProductNotFound
				}
				return err
			}

			if product.Stock < line.Quantity {
				return &InsufficientStockError{ProductName: product.Name}
			}

			if err := s.products.DecrementStock(txCtx, product.ID, line.Quantity); err != nil {
				// The guarded update refusing after a successful read means
				// a concurrent writer got there first.
				if errors.Is(err, repositories.ErrNotFound) {
					return &InsufficientStockError{ProductName: product.Name}
				}
				return err
			}

			total += product.Price * float64(line.Quantity)
			items = append(items, models.OrderItem{Product: product.ID, Quantity: line.Quantity})
		}

		o := &models.Order{
			User:        userID,
			Products:    items,
			TotalAmount: total,
			Status:      models.OrderSuccessful,
		}
		if err := s.orders.Create(txCtx, o); err != nil {
			return err
		}

		if err := s.users.AppendOrder(txCtx, userID, o.ID); err != nil {
			return err
		}

		order = o
		return nil
	})
	if err != nil {
		metrics.OrderFailures.WithLabelValues(failureReason(err)).Inc()
		return nil, err
	}

	metrics.OrdersPlaced.Inc()
	metrics.OrderAmount.Observe(order.TotalAmount)
	logger.WithCtx(ctx).Info("order placed",
		"order_id", order.ID.Hex(),
		"user_id", userID.Hex(),
		"total", order.TotalAmount,
		"items", len(order.Products),
	)
	return order, nil
}

// ListForUser returns every order the user has placed.
func (s *OrderService) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}

func failureReason(err error) string {
	var insufficient *InsufficientStockError
	switch {
	case errors.Is(err, ErrProductNotFound):
		return "not_found"
	case errors.As(err, &insufficient):
		return "insufficient_stock"
	default:
		return "internal"
	}
}
