package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"order-api/controllers"
	"order-api/middlewares"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Dependencies struct {
	Auth        *controllers.AuthController
	Orders      *controllers.OrderController
	Gate        middlewares.Authenticator
	TokenHeader string
	DB          Pinger
	Log         logrus.FieldLogger
}

// SetupRouter builds the HTTP surface. Order routes are only reachable
// through the authentication gate.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(deps.Log))
	r.Use(middlewares.PrometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", health(deps.DB))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/register", deps.Auth.Register)
		auth.POST("/login", deps.Auth.Login)

		orders := v1.Group("/orders")
		orders.Use(middlewares.AuthMiddleware(deps.Gate, deps.TokenHeader))
		orders.POST("", deps.Orders.CreateOrder)
		orders.GET("", deps.Orders.GetUserOrders)
		orders.GET("/:order_id", deps.Orders.GetOrderDetails)
	}

	return r
}

func health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
