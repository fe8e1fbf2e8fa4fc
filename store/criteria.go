package store

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// handlers builds the model handlers for a table keyed by an autoincrement
// integer. The repository's uuid id hooks are unused: ids are assigned by the
// database and lookups go through byID.
func handlers[T any](newRecord func() T, identifier string) repository.ModelHandlers[T] {
	return repository.ModelHandlers[T]{
		NewRecord:     newRecord,
		GetID:         func(T) uuid.UUID { return uuid.Nil },
		SetID:         func(T, uuid.UUID) {},
		GetIdentifier: func() string { return identifier },
	}
}

func byID(id int64) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.id = ?", id)
	}
}

func whereColumn(column string, value any) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.? = ?", bun.Ident(column), value)
	}
}

func newestFirst() repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.created_at DESC, ?TableAlias.id DESC")
	}
}

func page(offset, limit int) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Offset(offset).Limit(limit)
	}
}

func withRelation(name string, apply ...func(*bun.SelectQuery) *bun.SelectQuery) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Relation(name, apply...)
	}
}
