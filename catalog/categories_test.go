package catalog

import (
	"context"
	"testing"
)

func TestCategoryService_FindAllIsCached(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		categories, err := env.catSvc.FindAll(ctx)
		if err != nil {
			t.Fatalf("FindAll failed: %v", err)
		}
		if len(categories) != 5 {
			t.Fatalf("expected 5 categories, got %d", len(categories))
		}
	}

	if got := env.categories.lists.Load(); got != 1 {
		t.Errorf("expected one store read, got %d", got)
	}
	if members := env.reg.Members("categories"); len(members) != 1 || members[0] != "categories:all" {
		t.Errorf("unexpected categories namespace %v", members)
	}
}

func TestCategoryService_CreateInvalidatesList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.catSvc.FindAll(ctx); err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}

	created, err := env.catSvc.Create(ctx, CreateCategoryInput{Name: "Toys", Description: "Games and toys"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected created category to have an id")
	}

	categories, err := env.catSvc.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(categories) != 6 {
		t.Errorf("expected the new category to be listed, got %d", len(categories))
	}
	if got := env.categories.lists.Load(); got != 2 {
		t.Errorf("expected list to be reloaded once, got %d reads", got)
	}
}

func TestCategoryService_CreateDuplicate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.catSvc.Create(context.Background(), CreateCategoryInput{Name: "Books"})
	if err == nil {
		t.Fatal("expected conflict error")
	}
	assertBusinessError(t, err)
}

func TestCategoryService_FindByID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	booksID := env.categoryID(t, "Books")

	for i := 0; i < 2; i++ {
		category, err := env.catSvc.FindByID(ctx, booksID)
		if err != nil {
			t.Fatalf("FindByID failed: %v", err)
		}
		if category.Name != "Books" || len(category.Products) != 2 {
			t.Fatalf("unexpected category %+v", category)
		}
	}
	if got := env.categories.details.Load(); got != 1 {
		t.Errorf("expected one store read, got %d", got)
	}
	if members := env.reg.Members(categoryNamespace(booksID)); len(members) != 1 {
		t.Errorf("expected details key under category namespace, got %v", members)
	}
}

func TestCategoryService_FindByIDNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := env.catSvc.FindByID(ctx, 9999)
		if err == nil {
			t.Fatal("expected not found error")
		}
		assertBusinessError(t, err)
	}
	if got := env.categories.details.Load(); got != 2 {
		t.Errorf("misses must not be cached, got %d store reads", got)
	}
}
