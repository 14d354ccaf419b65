package application

import (
	"context"
	"time"

	"github.com/classeval/collection-api/internal/collection/domain"
)

// EvaluationTimestampLayout は評価行の先頭列に記録する日時の書式。
const EvaluationTimestampLayout = "02/01/2006 15:04:05"

// evaluationService implements EvaluationService on top of a RowStore.
type evaluationService struct {
	store    RowStore
	table    string
	location *time.Location
}

// NewEvaluationService creates an evaluation service bound to the given table.
// タイムスタンプは location のローカル時刻で採番する。
func NewEvaluationService(store RowStore, table string, location *time.Location) EvaluationService {
	return &evaluationService{store: store, table: table, location: location}
}

// Submit は検証済みの評価をサーバー時刻付きで1行追記し、行番号を返す。
func (s *evaluationService) Submit(ctx context.Context, evaluation domain.Evaluation) (int, error) {
	timestamp := time.Now().In(s.location).Format(EvaluationTimestampLayout)
	return s.store.Append(ctx, s.table, evaluation.Row(timestamp))
}
