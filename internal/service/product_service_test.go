package service

import (
	"context"
	"path/filepath"
	"testing"

	"fander/internal/domain"
	"fander/internal/repository"
)

func setupPS(t *testing.T) *ProductService {
	t.Helper()
	store, err := repository.NewFileStore(filepath.Join(t.TempDir(), "file.json"))
	if err != nil {
		t.Fatal(err)
	}
	return NewProductService(store, repository.NewFileTx(store))
}

func TestProduct_Create_Valid(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	p, err := ps.Create(ctx, domain.Product{Name: "Dompet Kulit", Category: "Aksesoris", Price: 500000})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected id assigned")
	}
	got, err := ps.GetByID(ctx, p.ID)
	if err != nil || got.Price != 500000 {
		t.Fatalf("created product not retrievable: %v", err)
	}
}

func TestProduct_Create_Invalid(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	if _, err := ps.Create(ctx, domain.Product{Name: "", Price: 500000}); err != ErrInvalidInput {
		t.Fatalf("missing name: got %v", err)
	}
	if _, err := ps.Create(ctx, domain.Product{Name: "X"}); err != ErrInvalidInput {
		t.Fatalf("missing price: got %v", err)
	}
	// нижняя и верхняя границы
	if _, err := ps.Create(ctx, domain.Product{Name: "X", Price: 5000}); err != ErrInvalidInput {
		t.Fatalf("price below range: got %v", err)
	}
	if _, err := ps.Create(ctx, domain.Product{Name: "X", Price: 10000001}); err != ErrInvalidInput {
		t.Fatalf("price above range: got %v", err)
	}
	if _, err := ps.Create(ctx, domain.Product{Name: "X", Price: 10000}); err != nil {
		t.Fatalf("price at lower bound must pass: %v", err)
	}
	if _, err := ps.Create(ctx, domain.Product{Name: "Y", Price: 10000000}); err != nil {
		t.Fatalf("price at upper bound must pass: %v", err)
	}
}

func TestProduct_Update_PartialMerge(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	p, err := ps.Create(ctx, domain.Product{
		Name:        "Tas Kerja",
		Category:    "Tas",
		Price:       800000,
		Description: "kulit sapi",
	})
	if err != nil {
		t.Fatal(err)
	}

	newPrice := int64(850000)
	updated, err := ps.Update(ctx, p.ID, ProductPatch{Price: &newPrice})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Price != 850000 {
		t.Fatalf("price not updated: %v", updated.Price)
	}
	// остальные поля нетронуты
	if updated.Name != "Tas Kerja" || updated.Category != "Tas" || updated.Description != "kulit sapi" {
		t.Fatalf("partial update touched other fields: %+v", updated)
	}

	badPrice := int64(5000)
	if _, err := ps.Update(ctx, p.ID, ProductPatch{Price: &badPrice}); err != ErrInvalidInput {
		t.Fatalf("out-of-range price on update: got %v", err)
	}

	name := "Tas Kerja Premium"
	updated, err = ps.Update(ctx, p.ID, ProductPatch{Name: &name})
	if err != nil || updated.Name != name || updated.Price != 850000 {
		t.Fatalf("name-only update wrong: %+v err=%v", updated, err)
	}
}

func TestProduct_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	name := "X"
	if _, err := ps.Update(ctx, "no-such-id", ProductPatch{Name: &name}); err != repository.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProduct_Delete(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	p, err := ps.Create(ctx, domain.Product{Name: "Sabuk", Price: 250000})
	if err != nil {
		t.Fatal(err)
	}
	if err := ps.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := ps.GetByID(ctx, p.ID); err != repository.ErrNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := ps.Delete(ctx, p.ID); err != repository.ErrNotFound {
		t.Fatalf("deleting missing product: expected not found, got %v", err)
	}
}
