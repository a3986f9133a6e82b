package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"cafe_pos/internal/models"
	"cafe_pos/internal/services"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	menuService services.MenuService
}

func NewMenuHandler(menuService services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

type menuItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// CreateMenuItems accepts a single menu item or an array of them, matching
// the admin tooling that posts both shapes.
func (h *MenuHandler) CreateMenuItems(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	var reqs []menuItemRequest
	if err := json.Unmarshal(body, &reqs); err != nil {
		var single menuItemRequest
		if err := json.Unmarshal(body, &single); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must contain one or more menu item entries."})
			return
		}
		reqs = []menuItemRequest{single}
	}

	items := make([]models.MenuItem, 0, len(reqs))
	for _, req := range reqs {
		items = append(items, models.MenuItem{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
		})
	}

	if err := h.menuService.CreateMenuItems(items); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("%d menu item(s) created successfully", len(items)),
		"items":   items,
	})
}

func (h *MenuHandler) ListMenuItems(c *gin.Context) {
	items, err := h.menuService.GetAllMenuItems()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) GetMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.menuService.GetMenuItemByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type updateMenuItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name == nil && req.Description == nil && req.Price == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one field must be provided to update"})
		return
	}

	item, err := h.menuService.UpdateMenuItem(id, services.MenuItemUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item updated successfully",
		"item":    item,
	})
}

func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.menuService.DeleteMenuItem(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Menu item with id %d deleted successfully", id)})
}
