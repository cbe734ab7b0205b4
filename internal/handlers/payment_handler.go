package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wanderlust-travel/api/internal/apperr"
	"github.com/wanderlust-travel/api/internal/models"
	"github.com/wanderlust-travel/api/internal/services"
)

// CreateOrder opens a payment order for the given amount and returns the
// client-side credentials needed to complete it.
func CreateOrder(ps *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Amount   int64  `json:"amount" binding:"required,gt=0"`
			Currency string `json:"currency"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperr.Validation(err.Error()))
			return
		}

		order, err := ps.CreateOrder(c.Request.Context(), req.Amount, req.Currency)
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(order, "Order created"))
	}
}
