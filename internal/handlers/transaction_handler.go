package handlers

import (
	"errors"
	"net/http"
	"time"

	"cafe_pos/internal/middleware"
	"cafe_pos/internal/services"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	transactionService services.TransactionService
}

func NewTransactionHandler(transactionService services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

type orderItemRequest struct {
	MenuItemID uint `json:"menuItemId" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,gt=0"`
}

type createOrderRequest struct {
	TableID       uint               `json:"tableId" binding:"required"`
	Items         []orderItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string             `json:"paymentMethod"`
}

func toItemInputs(reqs []orderItemRequest) []services.OrderItemInput {
	items := make([]services.OrderItemInput, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, services.OrderItemInput{MenuItemID: r.MenuItemID, Quantity: r.Quantity})
	}
	return items
}

// respondOrderError applies the order-engine status mapping: a missing menu
// item inside a create/update is a bad request naming the offending id, not
// a 404.
func respondOrderError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrMenuItemNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respondError(c, err)
}

func (h *TransactionHandler) CreateOrder(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.transactionService.CreateOrder(req.TableID, toItemInputs(req.Items), identity.UserID, req.PaymentMethod)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
	})
}

type updateOrderRequest struct {
	Items []orderItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (h *TransactionHandler) UpdateOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}

	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.transactionService.UpdateOrder(orderID, toItemInputs(req.Items))
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order updated successfully",
		"order":   order,
	})
}

func (h *TransactionHandler) DeleteOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}

	if err := h.transactionService.DeleteOrder(orderID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		date = &parsed
	}

	orders, err := h.transactionService.GetTransactionsFiltered(identity.UserID, identity.Role, date, c.Query("paymentMethod"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *TransactionHandler) PrintReceipt(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}

	receipt, err := h.transactionService.FinalizeAndEmitReceipt(orderID, identity.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}
