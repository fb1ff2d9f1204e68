package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"order-api/models"
)

// Join of orders with their line items. Callers append the owner filter;
// every query built from it is scoped to a user id.
const selectOrderItemRows = `
SELECT o.order_id, o.user_id, o.note, o.created_at AS order_at,
       oi.item_id, oi.description, oi.qty, oi.price
FROM orders o
INNER JOIN order_items oi ON oi.order_id = o.order_id
`

type OrderRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db, now: utcNow}
}

// CreateOrder inserts the order row using exec, which is normally the
// transaction opened by CreateOrderWithItems.
func (r *OrderRepository) CreateOrder(ctx context.Context, exec sqlx.ExtContext, userID uuid.UUID, note *string) (*models.Order, error) {
	order := &models.Order{
		OrderID:   uuid.New(),
		UserID:    userID,
		Note:      note,
		CreatedAt: r.now(),
	}

	_, err := sqlx.NamedExecContext(ctx, exec,
		`INSERT INTO orders (order_id, user_id, note, created_at) VALUES (:order_id, :user_id, :note, :created_at)`,
		order,
	)
	if err != nil {
		return nil, errors.Wrap(err, "insert order")
	}
	return order, nil
}

// CreateOrderItems inserts all items of an order in one statement. seq keeps
// the submission order so reads can return items the way they were sent.
func (r *OrderRepository) CreateOrderItems(ctx context.Context, exec sqlx.ExtContext, orderID uuid.UUID, items []models.NewOrderItem) ([]models.OrderItem, error) {
	if len(items) == 0 {
		return nil, nil
	}

	createdAt := r.now()
	rows := make([]models.OrderItem, 0, len(items))
	for i, item := range items {
		rows = append(rows, models.OrderItem{
			ItemID:      uuid.New(),
			OrderID:     orderID,
			Seq:         i,
			Description: item.Description,
			Qty:         item.Qty,
			Price:       item.Price,
			CreatedAt:   createdAt,
		})
	}

	_, err := sqlx.NamedExecContext(ctx, exec,
		`INSERT INTO order_items (item_id, order_id, seq, description, qty, price, created_at)
VALUES (:item_id, :order_id, :seq, :description, :qty, :price, :created_at)`,
		rows,
	)
	if err != nil {
		return nil, errors.Wrap(err, "insert order items")
	}
	return rows, nil
}

// CreateOrderWithItems writes an order and its items in a single
// transaction. Nothing is persisted unless both inserts succeed. An order
// without items is rejected with models.ErrValidation before any SQL runs.
func (r *OrderRepository) CreateOrderWithItems(ctx context.Context, userID uuid.UUID, note *string, items []models.NewOrderItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, errors.WithStack(models.ErrValidation)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	order, err := r.CreateOrder(ctx, tx, userID, note)
	if err != nil {
		return nil, err
	}
	if _, err := r.CreateOrderItems(ctx, tx, order.OrderID, items); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit order")
	}
	return order, nil
}

// GetOrder returns the order with its items. An order that does not exist
// and one owned by another user both yield models.ErrNotFound.
func (r *OrderRepository) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.OrderDetails, error) {
	rows, err := r.selectRows(ctx,
		selectOrderItemRows+`WHERE o.user_id = ? AND o.order_id = ?
ORDER BY oi.seq`,
		userID, orderID,
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.WithStack(models.ErrNotFound)
	}
	return aggregateOrder(rows), nil
}

// ListOrders returns every order of userID that has at least one item.
// Items are left nil and the order of the result is unspecified.
func (r *OrderRepository) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.OrderDetails, error) {
	rows, err := r.selectRows(ctx, selectOrderItemRows+`WHERE o.user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	return groupOrders(rows), nil
}

func (r *OrderRepository) selectRows(ctx context.Context, query string, args ...interface{}) ([]orderItemRow, error) {
	var rows []orderItemRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select order rows")
	}
	return rows, nil
}
