package repository

import (
	"time"

	"github.com/google/uuid"

	"order-api/models"
)

// orderItemRow is one row of the orders/order_items join.
type orderItemRow struct {
	OrderID     uuid.UUID `db:"order_id"`
	UserID      uuid.UUID `db:"user_id"`
	Note        *string   `db:"note"`
	OrderAt     time.Time `db:"order_at"`
	ItemID      uuid.UUID `db:"item_id"`
	Description string    `db:"description"`
	Qty         int32     `db:"qty"`
	Price       int32     `db:"price"`
}

func (r orderItemRow) lineTotal() int64 {
	return int64(r.Qty) * int64(r.Price)
}

func (r orderItemRow) details() models.OrderDetails {
	return models.OrderDetails{
		OrderID: r.OrderID,
		UserID:  r.UserID,
		Note:    r.Note,
		OrderAt: r.OrderAt,
	}
}

// aggregateOrder folds the rows of a single order. rows must be non-empty
// and share one order id.
func aggregateOrder(rows []orderItemRow) *models.OrderDetails {
	order := rows[0].details()

	items := make([]models.OrderItemDetails, 0, len(rows))
	for _, row := range rows {
		order.OrderTotal += row.lineTotal()
		items = append(items, models.OrderItemDetails{
			ItemID:      row.ItemID,
			Description: row.Description,
			Qty:         row.Qty,
			Price:       row.Price,
		})
	}
	order.Items = &items

	return &order
}

// groupOrders folds rows into one entry per order id. The first row seen
// for an order supplies its metadata; items are not collected.
func groupOrders(rows []orderItemRow) []models.OrderDetails {
	byID := make(map[uuid.UUID]*models.OrderDetails)
	for _, row := range rows {
		order, ok := byID[row.OrderID]
		if !ok {
			d := row.details()
			order = &d
			byID[row.OrderID] = order
		}
		order.OrderTotal += row.lineTotal()
	}

	orders := make([]models.OrderDetails, 0, len(byID))
	for _, order := range byID {
		orders = append(orders, *order)
	}
	return orders
}
