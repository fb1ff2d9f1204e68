package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"order-api/middlewares"
	"order-api/models"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req models.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.OrderDetails, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]models.OrderDetails, error)
}

// OrderController serves the order routes. They must be registered behind
// middlewares.AuthMiddleware.
type OrderController struct {
	orders OrderService
}

func NewOrderController(orders OrderService) *OrderController {
	return &OrderController{orders: orders}
}

func (ctl *OrderController) CreateOrder(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOrderOperation("create", status)
	}()
	userID, exists := middlewares.UserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := ctl.orders.CreateOrder(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, map[error]string{
			models.ErrValidation: "Order must contain at least one item with non-negative qty and price",
		})
		return
	}

	c.JSON(http.StatusOK, order)
}

func (ctl *OrderController) GetUserOrders(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOrderOperation("list", status)
	}()
	userID, exists := middlewares.UserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	orders, err := ctl.orders.ListOrders(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (ctl *OrderController) GetOrderDetails(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOrderOperation("details", status)
	}()
	userID, exists := middlewares.UserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := ctl.orders.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		respondError(c, err, map[error]string{
			models.ErrNotFound: "Order id not correct (or not present) for the user in token",
		})
		return
	}

	c.JSON(http.StatusOK, order)
}
