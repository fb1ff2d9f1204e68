package services

import (
	"context"

	"github.com/google/uuid"

	"order-api/models"
)

type UserStore interface {
	FindByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, firstName, lastName, email, passwordHash string) (*models.User, error)
}

type TokenIssuer interface {
	GenerateToken(userID uuid.UUID) (string, error)
	ParseToken(token string) (uuid.UUID, error)
}

// OrderStore is the persistence side of orders. Every method takes the
// requesting user id; reads are filtered by it in the query itself.
type OrderStore interface {
	CreateOrderWithItems(ctx context.Context, userID uuid.UUID, note *string, items []models.NewOrderItem) (*models.Order, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.OrderDetails, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]models.OrderDetails, error)
}

type EventPublisher interface {
	PublishOrderEvent(event models.OrderEvent, priority uint8) error
}
