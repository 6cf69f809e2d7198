package domain

import "context"

// Transactor executa fn dentro de uma transação carregada no ctx. Os
// repositórios chamados com esse ctx participam da mesma transação.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
