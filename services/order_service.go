package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"order-api/models"
)

const (
	defaultEventPriority = 5
	largeOrderPriority   = 9

	// Orders above this total, in minor units, are published with a
	// higher priority.
	largeOrderTotal = 100000
)

type OrderService struct {
	orders OrderStore
	events EventPublisher
	log    logrus.FieldLogger
}

// NewOrderService wires the order flows. events may be nil.
func NewOrderService(orders OrderStore, events EventPublisher, log logrus.FieldLogger) *OrderService {
	return &OrderService{orders: orders, events: events, log: log}
}

// CreateOrder stores an order with its items atomically. Orders without
// items are rejected so every stored order is visible to the join reads.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req models.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, errors.Wrap(models.ErrValidation, "order must contain at least one item")
	}

	var total int64
	for _, item := range req.Items {
		if item.Qty < 0 || item.Price < 0 {
			return nil, errors.Wrap(models.ErrValidation, "quantity and price must not be negative")
		}
		total += int64(item.Qty) * int64(item.Price)
	}

	order, err := s.orders.CreateOrderWithItems(ctx, userID, req.Note, req.Items)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			return nil, models.ErrValidation
		}
		s.log.WithError(err).WithField("user_id", userID).Error("Failed to create order")
		return nil, models.ErrInternal
	}

	s.log.WithFields(logrus.Fields{
		"order_id": order.OrderID,
		"user_id":  userID,
		"items":    len(req.Items),
		"total":    total,
	}).Info("Order created")

	if s.events != nil {
		event := models.OrderEvent{
			Type:     models.EventOrderCreated,
			OrderID:  order.OrderID,
			UserID:   userID,
			Total:    total,
			Items:    len(req.Items),
			Occurred: time.Now().UTC(),
		}
		if err := s.events.PublishOrderEvent(event, priorityFor(total)); err != nil {
			s.log.WithError(err).WithField("order_id", order.OrderID).Warn("Failed to publish order created event")
		}
	}

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.OrderDetails, error) {
	order, err := s.orders.GetOrder(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.log.WithError(err).WithField("order_id", orderID).Error("Failed to load order")
		return nil, models.ErrInternal
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.OrderDetails, error) {
	orders, err := s.orders.ListOrders(ctx, userID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("Failed to list orders")
		return nil, models.ErrInternal
	}
	return orders, nil
}

func priorityFor(total int64) uint8 {
	if total > largeOrderTotal {
		return largeOrderPriority
	}
	return defaultEventPriority
}
