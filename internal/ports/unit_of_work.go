package ports

import "context"

// Tx is an opaque transaction handle owned by the store adapter (*gorm.DB for sqlite).
type Tx interface{}

// UnitOfWork runs fn inside one store transaction. Repositories called with the
// context handed to fn join that transaction; a non-nil return rolls it back.
type UnitOfWork interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

func WithTxContext(ctx context.Context, tx Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func TxFromContext(ctx context.Context) Tx {
	return ctx.Value(txKey{})
}

// InTx reports whether ctx already carries a transaction.
func InTx(ctx context.Context) bool {
	return TxFromContext(ctx) != nil
}
