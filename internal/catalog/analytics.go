// analytics.go implements download and view tracking.

package catalog

import "context"

// RecordDownload increments a listing's download counter.
func (s *Service) RecordDownload(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.store.AddDownload(ctx, id); err != nil {
		return translate(err)
	}
	return nil
}

// RecordView increments a listing's view counter.
func (s *Service) RecordView(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.store.AddView(ctx, id); err != nil {
		return translate(err)
	}
	return nil
}
