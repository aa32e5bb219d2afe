package service

import (
	"context"
	"errors"

	"fander/internal/domain"
	"fander/internal/repository"
)

// Допустимый диапазон цены товара, включительно
const (
	MinPrice = 10000
	MaxPrice = 10000000
)

var ErrInvalidInput = errors.New("invalid input")

// ProductService инкапсулирует бизнес-логику вокруг товаров
type ProductService struct {
	repo repository.ProductRepository
	tx   repository.TxManager
}

func NewProductService(repo repository.ProductRepository, tx repository.TxManager) *ProductService {
	return &ProductService{repo: repo, tx: tx}
}

func priceInRange(price int64) bool {
	return price >= MinPrice && price <= MaxPrice
}

func (s *ProductService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.Name == "" || p.Price == 0 {
		return nil, ErrInvalidInput
	}
	if !priceInRange(p.Price) {
		return nil, ErrInvalidInput
	}
	cp := p
	if err := s.repo.CreateProduct(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetProduct(ctx, id)
}

// ProductPatch частичное обновление: nil-поле остаётся как было
type ProductPatch struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Price       *int64  `json:"price"`
	Description *string `json:"description"`
	ImageUrl    *string `json:"imageUrl"`
}

// Update применяет patch поле за полем поверх текущей записи
func (s *ProductService) Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	if patch.Price != nil && !priceInRange(*patch.Price) {
		return nil, ErrInvalidInput
	}
	var updated *domain.Product
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetProduct(ctx, id)
		if err != nil {
			return err
		}
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.ImageUrl != nil {
			p.ImageUrl = *patch.ImageUrl
		}
		if err := s.repo.UpdateProduct(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteProduct(ctx, id)
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}
