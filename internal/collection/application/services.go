package application

import (
	"context"
	"errors"

	"github.com/classeval/collection-api/internal/collection/domain"
)

// ErrTableNotFound はスキャン対象のテーブルが未作成の場合に返る。
var ErrTableNotFound = errors.New("table not found")

// RowStore abstracts tabular persistence consumed by the services.
// RowStore はヘッダー付きの表を読み書きするためのポート。Scan の先頭行はヘッダー。
type RowStore interface {
	Scan(ctx context.Context, table string) ([][]string, error)
	Append(ctx context.Context, table string, row []string) (int, error)
	ReplaceBody(ctx context.Context, table string, rows [][]string) error
	Stats(ctx context.Context) ([]TableStats, error)
}

// TableStats は1テーブル分の行数メタデータ(ヘッダー行を除く)。
type TableStats struct {
	Table string
	Rows  int
}

// ScheduleService describes instructor schedule use-cases.
type ScheduleService interface {
	Instructors(ctx context.Context) (domain.NestedSchedule, int, error)
	Replace(ctx context.Context, nested domain.NestedSchedule) (int, error)
}

// EvaluationService describes evaluation submission use-cases.
type EvaluationService interface {
	Submit(ctx context.Context, evaluation domain.Evaluation) (int, error)
}

// StatusService exposes store metadata for the health action.
type StatusService interface {
	Snapshot(ctx context.Context) ([]TableStats, error)
}
