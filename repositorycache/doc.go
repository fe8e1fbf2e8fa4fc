// Package repositorycache provides cache decorators for the storefront
// stores. Reads go through the namespaced registry; writes pass through to
// the wrapped store.
//
// ByID is the generic building block: it caches single record lookups by
// primary key under a namespace derived from the record type, so *store.User
// entries live under "user" with keys like "user:42".
//
//	users := repositorycache.NewUsers(store.NewUserStore(db), reg, time.Minute)
//	svc := auth.NewService(users, tokens, hasher, logger)
//
// Load errors, including store.ErrNotFound, are never cached, so a record
// created after a failed lookup is found on the next read. Records cached
// here are copies decoded from the backend; fields excluded from the codec
// (such as User.PasswordHash) come back empty.
package repositorycache
