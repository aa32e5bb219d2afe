package service

import (
	"context"
	"path/filepath"
	"testing"

	"fander/internal/domain"
	"fander/internal/repository"
)

func setupOS(t *testing.T) (*ProductService, *OrderService) {
	t.Helper()
	store, err := repository.NewFileStore(filepath.Join(t.TempDir(), "file.json"))
	if err != nil {
		t.Fatal(err)
	}
	tx := repository.NewFileTx(store)
	return NewProductService(store, tx), NewOrderService(store, store, tx)
}

func buyer() CreateOrderInput {
	return CreateOrderInput{
		BuyerName:    "Budi",
		BuyerPhone:   "0812345678",
		BuyerAddress: "Jl. Merdeka 1, Bandung",
	}
}

func TestCreateOrder_SnapshotsProduct(t *testing.T) {
	ctx := context.Background()
	ps, os := setupOS(t)

	p, err := ps.Create(ctx, domain.Product{Name: "Jaket Biker", Category: "Jaket", Price: 2000000})
	if err != nil {
		t.Fatal(err)
	}

	in := buyer()
	in.ProductID = p.ID
	o, err := os.Create(ctx, "u1", in)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if o.Status != domain.OrderStatusPending {
		t.Fatalf("new order must be pending, got %v", o.Status)
	}
	if o.ProductName != "Jaket Biker" || o.TotalPrice != 2000000 {
		t.Fatalf("snapshot wrong: %+v", o)
	}
	if o.CreatedAt.IsZero() {
		t.Fatalf("createdAt not set")
	}

	// поднимаем цену товара: уже оформленный заказ не меняется
	newPrice := int64(3000000)
	if _, err := ps.Update(ctx, p.ID, ProductPatch{Price: &newPrice}); err != nil {
		t.Fatal(err)
	}
	list, err := os.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].TotalPrice != 2000000 {
		t.Fatalf("order price must stay snapshotted: %+v", list)
	}
}

func TestCreateOrder_GuestSentinel(t *testing.T) {
	ctx := context.Background()
	ps, os := setupOS(t)
	p, _ := ps.Create(ctx, domain.Product{Name: "Tas", Price: 950000})

	in := buyer()
	in.ProductID = p.ID
	o, err := os.Create(ctx, "", in)
	if err != nil {
		t.Fatal(err)
	}
	if o.UserID != domain.GuestUserID {
		t.Fatalf("expected guest sentinel, got %q", o.UserID)
	}
}

func TestCreateOrder_Validation(t *testing.T) {
	ctx := context.Background()
	ps, os := setupOS(t)
	p, _ := ps.Create(ctx, domain.Product{Name: "Tas", Price: 950000})

	checks := []func(*CreateOrderInput){
		func(in *CreateOrderInput) { in.ProductID = "" },
		func(in *CreateOrderInput) { in.BuyerName = "" },
		func(in *CreateOrderInput) { in.BuyerPhone = "" },
		func(in *CreateOrderInput) { in.BuyerAddress = "" },
	}
	for i, mutate := range checks {
		in := buyer()
		in.ProductID = p.ID
		mutate(&in)
		if _, err := os.Create(ctx, "u1", in); err != ErrInvalidInput {
			t.Fatalf("case %d: expected invalid input, got %v", i, err)
		}
	}

	// несуществующий товар
	in := buyer()
	in.ProductID = "no-such-product"
	if _, err := os.Create(ctx, "u1", in); err != repository.ErrNotFound {
		t.Fatalf("unknown product: expected not found, got %v", err)
	}
	// заказ при этом не создан
	list, _ := os.ListAll(ctx)
	if len(list) != 0 {
		t.Fatalf("failed create must not persist an order")
	}
}

func TestListByUser_FiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	ps, os := setupOS(t)
	p, _ := ps.Create(ctx, domain.Product{Name: "Tas", Price: 950000})

	for _, uid := range []string{"u1", "u2", "u1"} {
		in := buyer()
		in.ProductID = p.ID
		if _, err := os.Create(ctx, uid, in); err != nil {
			t.Fatal(err)
		}
	}

	mine, err := os.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(mine))
	}
	for _, o := range mine {
		if o.UserID != "u1" {
			t.Fatalf("foreign order: %+v", o)
		}
	}
	if mine[1].CreatedAt.After(mine[0].CreatedAt) {
		t.Fatalf("not sorted newest first")
	}

	all, _ := os.ListAll(ctx)
	if len(all) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(all))
	}
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	ps, os := setupOS(t)
	p, _ := ps.Create(ctx, domain.Product{Name: "Tas", Price: 950000})
	in := buyer()
	in.ProductID = p.ID
	o, err := os.Create(ctx, "u1", in)
	if err != nil {
		t.Fatal(err)
	}

	// любая из пяти меток принимается, в любом порядке
	for _, st := range []domain.OrderStatus{
		domain.OrderStatusProcessing,
		domain.OrderStatusShipped,
		domain.OrderStatusComplete,
		domain.OrderStatusCancelled,
		domain.OrderStatusPending,
	} {
		updated, err := os.UpdateStatus(ctx, o.ID, st)
		if err != nil {
			t.Fatalf("status %v: %v", st, err)
		}
		if updated.Status != st {
			t.Fatalf("status not applied: %+v", updated)
		}
	}

	if _, err := os.UpdateStatus(ctx, o.ID, "Delivered"); err != ErrInvalidInput {
		t.Fatalf("unknown label: expected invalid input, got %v", err)
	}
	if _, err := os.UpdateStatus(ctx, "no-such-order", domain.OrderStatusShipped); err != repository.ErrNotFound {
		t.Fatalf("unknown order: expected not found, got %v", err)
	}
}
