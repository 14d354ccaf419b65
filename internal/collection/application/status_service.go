package application

import "context"

// statusService implements StatusService.
type statusService struct {
	store RowStore
}

// NewStatusService creates a status service reading store metadata.
func NewStatusService(store RowStore) StatusService {
	return &statusService{store: store}
}

func (s *statusService) Snapshot(ctx context.Context) ([]TableStats, error) {
	return s.store.Stats(ctx)
}
