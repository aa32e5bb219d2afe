package service

import (
	"context"

	"fander/internal/domain"
	"fander/internal/repository"
)

// OrderService реализует логику заказов: оформление и смена статуса
type OrderService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	tx       repository.TxManager
}

func NewOrderService(products repository.ProductRepository, orders repository.OrderRepository, tx repository.TxManager) *OrderService {
	return &OrderService{products: products, orders: orders, tx: tx}
}

// CreateOrderInput данные оформления заказа (наложенный платёж)
type CreateOrderInput struct {
	ProductID    string
	BuyerName    string
	BuyerPhone   string
	BuyerAddress string
}

// Create оформляет заказ. Имя и цена товара снимаются на момент вызова:
// последующие правки товара уже оформленные заказы не меняют.
// Пустой userID превращается в гостевой.
func (s *OrderService) Create(ctx context.Context, userID string, in CreateOrderInput) (*domain.Order, error) {
	if in.ProductID == "" || in.BuyerName == "" || in.BuyerPhone == "" || in.BuyerAddress == "" {
		return nil, ErrInvalidInput
	}
	if userID == "" {
		userID = domain.GuestUserID
	}
	var created *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		p, err := s.products.GetProduct(ctx, in.ProductID)
		if err != nil {
			return err
		}
		o := domain.Order{
			UserID:       userID,
			ProductID:    p.ID,
			ProductName:  p.Name,
			TotalPrice:   p.Price,
			BuyerName:    in.BuyerName,
			BuyerPhone:   in.BuyerPhone,
			BuyerAddress: in.BuyerAddress,
			Status:       domain.OrderStatusPending,
		}
		if err := s.orders.CreateOrder(ctx, &o); err != nil {
			return err
		}
		created = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListAll все заказы, новые сверху
func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListOrders(ctx)
}

// ListByUser заказы одного покупателя, новые сверху
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.orders.ListOrdersByUser(ctx, userID)
}

// UpdateStatus ставит любую из пяти допустимых меток; порядок переходов не ограничен
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if id == "" || !domain.ValidStatus(status) {
		return nil, ErrInvalidInput
	}
	var updated *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetOrder(ctx, id)
		if err != nil {
			return err
		}
		o.Status = status
		if err := s.orders.UpdateOrder(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
