package catalog

import (
	"context"
	"testing"

	"github.com/goliatone/go-storefront/registry"
)

func TestProductService_FindAll(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := Pagination{Page: 1, Limit: 3}

	page, err := env.prodSvc.FindAll(ctx, p)
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if page.Total != 8 || len(page.Data) != 3 || page.TotalPages != 3 || !page.HasNext || page.HasPrev {
		t.Errorf("unexpected page %+v", page)
	}
	if page.Data[0].Category == nil {
		t.Error("expected category to be joined")
	}

	again, err := env.prodSvc.FindAll(ctx, p)
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if again.Data[0].Name != page.Data[0].Name {
		t.Errorf("cached page differs: %q vs %q", again.Data[0].Name, page.Data[0].Name)
	}
	if got := env.products.lists.Load(); got != 1 {
		t.Errorf("expected one store read, got %d", got)
	}

	if _, err := env.prodSvc.FindAll(ctx, Pagination{Page: 2, Limit: 3}); err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if members := env.reg.Members("products:all"); len(members) != 2 {
		t.Errorf("expected two cached pages, got %v", members)
	}
}

func TestProductService_FindByCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	electronics := env.categoryID(t, "Electronics")

	page, err := env.prodSvc.FindByCategory(ctx, electronics, Pagination{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("FindByCategory failed: %v", err)
	}
	if page.Total != 4 {
		t.Errorf("expected 4 electronics, got %d", page.Total)
	}
	for _, product := range page.Data {
		if product.CategoryID != electronics {
			t.Errorf("product %q from another category", product.Name)
		}
	}

	_, err = env.prodSvc.FindByCategory(ctx, 9999, Pagination{Page: 1, Limit: 10})
	if err == nil {
		t.Fatal("expected not found for unknown category")
	}
	assertBusinessError(t, err)
}

func TestProductService_FindByID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	page, _ := env.prodSvc.FindAll(ctx, Pagination{Page: 1, Limit: 1})
	id := page.Data[0].ID

	for i := 0; i < 2; i++ {
		product, err := env.prodSvc.FindByID(ctx, id)
		if err != nil {
			t.Fatalf("FindByID failed: %v", err)
		}
		if product.ID != id || product.Category == nil {
			t.Errorf("unexpected product %+v", product)
		}
	}
	if got := env.products.gets.Load(); got != 1 {
		t.Errorf("expected one store read, got %d", got)
	}

	_, err := env.prodSvc.FindByID(ctx, 9999)
	if err == nil {
		t.Fatal("expected not found error")
	}
	assertBusinessError(t, err)
}

func TestProductService_CreateInvalidatesListings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	books := env.categoryID(t, "Books")
	clothing := env.categoryID(t, "Clothing")
	p := Pagination{Page: 1, Limit: 10}

	if _, err := env.prodSvc.FindAll(ctx, p); err != nil {
		t.Fatal(err)
	}
	if _, err := env.prodSvc.FindByCategory(ctx, books, p); err != nil {
		t.Fatal(err)
	}
	if _, err := env.prodSvc.FindByCategory(ctx, clothing, p); err != nil {
		t.Fatal(err)
	}
	if _, err := env.catSvc.FindByID(ctx, books); err != nil {
		t.Fatal(err)
	}

	created, err := env.prodSvc.Create(ctx, CreateProductInput{
		Name:        "The Go Programming Language",
		Description: "Donovan and Kernighan",
		Price:       42.5,
		Stock:       10,
		CategoryID:  books,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for _, ns := range []string{"products:all", productsByCategoryNamespace(books), categoryNamespace(books)} {
		if members := env.reg.Members(ns); len(members) != 0 {
			t.Errorf("expected %s to be cleared, still holds %v", ns, members)
		}
	}
	if members := env.reg.Members(productsByCategoryNamespace(clothing)); len(members) != 1 {
		t.Errorf("unrelated category listing should stay cached, got %v", members)
	}

	page, err := env.prodSvc.FindByCategory(ctx, books, p)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 3 || page.Data[0].ID != created.ID {
		t.Errorf("expected new product first in refreshed listing, got %+v", page)
	}

	category, err := env.catSvc.FindByID(ctx, books)
	if err != nil {
		t.Fatal(err)
	}
	if len(category.Products) != 3 {
		t.Errorf("expected category details to be refreshed, got %d products", len(category.Products))
	}
}

func TestProductService_CreateUnknownCategory(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.prodSvc.Create(context.Background(), CreateProductInput{Name: "Ghost", Price: 1, CategoryID: 9999})
	if err == nil {
		t.Fatal("expected not found error")
	}
	assertBusinessError(t, err)
}

func TestProductService_ContextNamespace(t *testing.T) {
	env := newTestEnv(t)
	ctx := registry.WithNamespaces(context.Background(), NamespaceCatalog)

	if _, err := env.prodSvc.FindAll(ctx, Pagination{Page: 1, Limit: 10}); err != nil {
		t.Fatal(err)
	}
	if _, err := env.catSvc.FindAll(ctx); err != nil {
		t.Fatal(err)
	}
	if members := env.reg.Members(NamespaceCatalog); len(members) != 2 {
		t.Fatalf("expected both reads under the catalog namespace, got %v", members)
	}

	if err := env.reg.ClearNamespace(ctx, NamespaceCatalog); err != nil {
		t.Fatal(err)
	}
	if _, err := env.catSvc.FindAll(ctx); err != nil {
		t.Fatal(err)
	}
	if got := env.categories.lists.Load(); got != 2 {
		t.Errorf("expected reload after clearing catalog, got %d reads", got)
	}
}
