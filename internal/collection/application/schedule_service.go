package application

import (
	"context"

	"github.com/classeval/collection-api/internal/collection/domain"
)

// scheduleService implements ScheduleService on top of a RowStore.
type scheduleService struct {
	store RowStore
	table string
}

// NewScheduleService creates a schedule service bound to the given table.
func NewScheduleService(store RowStore, table string) ScheduleService {
	return &scheduleService{store: store, table: table}
}

// Instructors はテーブル全件を読み出して4階層構造へ変換する。
// キャッシュは持たず毎回スキャンする。
func (s *scheduleService) Instructors(ctx context.Context) (domain.NestedSchedule, int, error) {
	rows, err := s.store.Scan(ctx, s.table)
	if err != nil {
		return nil, 0, err
	}
	nested, recordCount := domain.DecodeRows(rows)
	return nested, recordCount, nil
}

// Replace はテーブル本体を入力スケジュールの行で全置換する。
// マージはしない。入力に無いスロットは消える。
// 削除と挿入は別操作のため、挿入が失敗すると本体が空のまま残りうる。
func (s *scheduleService) Replace(ctx context.Context, nested domain.NestedSchedule) (int, error) {
	rows := domain.EncodeRows(nested)
	if err := s.store.ReplaceBody(ctx, s.table, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
