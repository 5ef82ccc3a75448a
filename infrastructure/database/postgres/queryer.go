package postgres

import (
	"context"
	"database/sql"
)

// Queryer é o subconjunto de leitura usado pelos repositórios
type Queryer interface {
	Query(ctx context.Context, sql string, args ...interface{}) (*sql.Rows, error)
}
