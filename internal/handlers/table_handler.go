package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"cafe_pos/internal/models"
	"cafe_pos/internal/services"

	"github.com/gin-gonic/gin"
)

type TableHandler struct {
	tableService services.TableService
}

func NewTableHandler(tableService services.TableService) *TableHandler {
	return &TableHandler{tableService: tableService}
}

type tableRequest struct {
	Number   int    `json:"number"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status"`
}

// CreateTables accepts a single table or an array of them.
func (h *TableHandler) CreateTables(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	var reqs []tableRequest
	if err := json.Unmarshal(body, &reqs); err != nil {
		var single tableRequest
		if err := json.Unmarshal(body, &single); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must contain one or more table entries."})
			return
		}
		reqs = []tableRequest{single}
	}

	tables := make([]models.Table, 0, len(reqs))
	for _, req := range reqs {
		tables = append(tables, models.Table{
			Number:   req.Number,
			Capacity: req.Capacity,
			Status:   req.Status,
		})
	}

	if err := h.tableService.CreateTables(tables); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("%d table(s) created successfully", len(tables)),
		"tables":  tables,
	})
}

func (h *TableHandler) ListTables(c *gin.Context) {
	tables, err := h.tableService.GetAllTables()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tables)
}

func (h *TableHandler) GetTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	table, err := h.tableService.GetTableByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, table)
}

type updateTableRequest struct {
	Number   *int    `json:"number"`
	Capacity *int    `json:"capacity"`
	Status   *string `json:"status"`
}

func (h *TableHandler) UpdateTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Number == nil && req.Capacity == nil && req.Status == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one field must be provided to update"})
		return
	}

	table, err := h.tableService.UpdateTable(id, services.TableUpdate{
		Number:   req.Number,
		Capacity: req.Capacity,
		Status:   req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Table updated successfully",
		"table":   table,
	})
}

func (h *TableHandler) DeleteTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.tableService.DeleteTable(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Table deleted successfully"})
}
