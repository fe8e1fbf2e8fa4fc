// Package catalog implements the storefront services. Category and product
// reads go through the namespace registry; writes clear the namespaces whose
// cached listings they make stale. Carts are read from the store directly.
package catalog
