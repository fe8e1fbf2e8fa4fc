// Package httpapi exposes the storefront over HTTP using fiber. Catalog
// routes tag their cache writes with the catalog namespace, and the cache
// routes let operators inspect and clear namespaces at runtime.
package httpapi
