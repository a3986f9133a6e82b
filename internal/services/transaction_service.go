package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cafe_pos/internal/models"
	"cafe_pos/internal/repository"
	"cafe_pos/internal/worker"

	"gorm.io/gorm"
)

// OrderItemInput is one requested line of an order.
type OrderItemInput struct {
	MenuItemID uint
	Quantity   int
}

// Receipt is a read-only snapshot of an order handed to the customer. It is
// built from the order as stored; the finalize side effects run afterwards
// in the background.
type Receipt struct {
	CafeName string             `json:"cafeName"`
	Date     time.Time          `json:"date"`
	Cashier  string             `json:"cashier"`
	Table    int                `json:"table"`
	Items    []models.OrderItem `json:"items"`
	Total    float64            `json:"total"`
}

type TransactionService interface {
	CreateOrder(tableID uint, items []OrderItemInput, kasirID uint, paymentMethod string) (*models.Order, error)
	UpdateOrder(orderID uint, items []OrderItemInput) (*models.Order, error)
	DeleteOrder(orderID uint) error
	FinalizeAndEmitReceipt(orderID uint, cashierName string) (*Receipt, error)
	GetTransactionsFiltered(kasirID uint, role string, date *time.Time, paymentMethod string) ([]models.Order, error)
}

type transactionService struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
	cleanup   *worker.Worker
	cafeName  string
}

func NewTransactionService(db *gorm.DB, orderRepo repository.OrderRepository, cleanup *worker.Worker, cafeName string) TransactionService {
	return &transactionService{
		db:        db,
		orderRepo: orderRepo,
		cleanup:   cleanup,
		cafeName:  cafeName,
	}
}

// buildLines resolves every requested item against the menu and snapshots
// line prices. Returns the lines and their total.
func buildLines(tx *gorm.DB, items []OrderItemInput) ([]models.OrderItem, float64, error) {
	if len(items) == 0 {
		return nil, 0, fmt.Errorf("%w: at least one item is required", ErrValidation)
	}

	lines := make([]models.OrderItem, 0, len(items))
	total := 0.0
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, 0, fmt.Errorf("%w: quantity must be positive", ErrValidation)
		}

		var menuItem models.MenuItem
		if err := tx.First(&menuItem, item.MenuItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, fmt.Errorf("%w: id %d", ErrMenuItemNotFound, item.MenuItemID)
			}
			return nil, 0, fmt.Errorf("failed to look up menu item: %w", err)
		}

		price := menuItem.Price * float64(item.Quantity)
		lines = append(lines, models.OrderItem{
			MenuItemID: menuItem.ID,
			Quantity:   item.Quantity,
			Price:      price,
		})
		total += price
	}
	return lines, total, nil
}

func (s *transactionService) CreateOrder(tableID uint, items []OrderItemInput, kasirID uint, paymentMethod string) (*models.Order, error) {
	if paymentMethod == "" {
		paymentMethod = string(models.PaymentCash)
	}
	if !models.ValidPaymentMethod(paymentMethod) {
		return nil, fmt.Errorf("%w: invalid payment method %q", ErrValidation, paymentMethod)
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTableNotFound
			}
			return fmt.Errorf("failed to look up table: %w", err)
		}

		if table.Status != string(models.TableAvailable) {
			return fmt.Errorf("%w: table %d is %s", ErrTableUnavailable, table.Number, table.Status)
		}

		lines, total, err := buildLines(tx, items)
		if err != nil {
			return err
		}

		order = models.Order{
			TableID:       tableID,
			KasirID:       kasirID,
			Total:         total,
			Status:        string(models.OrderOpen),
			PaymentMethod: paymentMethod,
			Items:         lines,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		if err := tx.Model(&table).Update("status", string(models.TableOccupied)).Error; err != nil {
			return fmt.Errorf("failed to occupy table: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *transactionService) UpdateOrder(orderID uint, items []OrderItemInput) (*models.Order, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("failed to look up order: %w", err)
		}

		if order.Status == string(models.OrderFinalized) {
			return ErrOrderFinalized
		}

		lines, total, err := buildLines(tx, items)
		if err != nil {
			return err
		}

		// Replace the item set wholesale; lines are never patched in place.
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear order items: %w", err)
		}
		for i := range lines {
			lines[i].OrderID = orderID
		}
		if err := tx.Create(&lines).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		if err := tx.Model(&order).Update("total", total).Error; err != nil {
			return fmt.Errorf("failed to update order total: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(orderID)
}

func (s *transactionService) DeleteOrder(orderID uint) error {
	// The table is intentionally left OCCUPIED here; only receipt
	// finalization frees it.
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("failed to look up order: %w", err)
		}

		if order.Status == string(models.OrderFinalized) {
			return ErrOrderFinalized
		}

		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		if err := tx.Delete(&order).Error; err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
}

// FinalizeAndEmitReceipt builds the receipt from the stored order and hands
// the terminal side effects (table back to AVAILABLE, order marked
// FINALIZED) to the background worker. The caller gets the receipt whether
// or not those side effects ever apply; a worker failure is only logged.
func (s *transactionService) FinalizeAndEmitReceipt(orderID uint, cashierName string) (*Receipt, error) {
	order, err := s.orderRepo.GetByIDWithTable(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to look up order: %w", err)
	}

	receipt := &Receipt{
		CafeName: s.cafeName,
		Date:     order.CreatedAt,
		Cashier:  cashierName,
		Table:    order.Table.Number,
		Items:    order.Items,
		Total:    order.Total,
	}

	tableID := order.TableID
	s.cleanup.Submit(worker.Task{
		Name: fmt.Sprintf("finalize-order-%d", orderID),
		Run: func(ctx context.Context) error {
			return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				if err := tx.Model(&models.Table{}).Where("id = ?", tableID).
					Update("status", string(models.TableAvailable)).Error; err != nil {
					return fmt.Errorf("failed to free table %d: %w", tableID, err)
				}
				if err := tx.Model(&models.Order{}).Where("id = ?", orderID).
					Update("status", string(models.OrderFinalized)).Error; err != nil {
					return fmt.Errorf("failed to finalize order %d: %w", orderID, err)
				}
				return nil
			})
		},
	})

	return receipt, nil
}

func (s *transactionService) GetTransactionsFiltered(kasirID uint, role string, date *time.Time, paymentMethod string) ([]models.Order, error) {
	if paymentMethod != "" && !models.ValidPaymentMethod(paymentMethod) {
		return nil, fmt.Errorf("%w: invalid payment method %q", ErrValidation, paymentMethod)
	}

	filter := repository.OrderFilter{
		Date:          date,
		PaymentMethod: paymentMethod,
	}
	// Cashiers only see their own transactions; managers see everything.
	if role == string(models.RoleKasir) {
		filter.KasirID = kasirID
	}
	return s.orderRepo.Find(filter)
}
