package catalog

import (
	"github.com/goliatone/go-storefront/cache"
)

// Namespace attached to every cached catalog read served over HTTP.
const NamespaceCatalog = "catalog"

const (
	keyCategoriesAll     = "categories:all"
	namespaceCategories  = "categories"
	namespaceProductsAll = "products:all"
	keyPrefixProducts    = "products"
	keyPrefixProduct     = "product"
	keyPrefixCategory    = "category"
)

func categoryDetailsKey(id int64) string {
	return cache.Key(keyPrefixCategory, id, "details")
}

func categoryNamespace(id int64) string {
	return cache.Key(keyPrefixCategory, id)
}

func productKey(id int64) string {
	return cache.Key(keyPrefixProduct, id)
}

func productsPageKey(p Pagination) string {
	return cache.Key(keyPrefixProducts, "all", "page", p.Page, "limit", p.Limit)
}

func productsByCategoryKey(categoryID int64, p Pagination) string {
	return cache.Key(keyPrefixProducts, "category", categoryID, "page", p.Page, "limit", p.Limit)
}

func productsByCategoryNamespace(categoryID int64) string {
	return cache.Key(keyPrefixProducts, "category", categoryID)
}
