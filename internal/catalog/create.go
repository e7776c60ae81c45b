// create.go implements listing creation and revision publishing.
//
// Both operations are transactional at the store layer: a listing row and
// its analytics tracker appear together or not at all.

package catalog

import (
	"context"
	"strings"

	"github.com/mkvarda/agora/internal/store"
	"github.com/mkvarda/agora/internal/validate"
)

// Create publishes a new listing at version 1 together with its analytics
// tracker. Download and view counters start at zero.
func (s *Service) Create(ctx context.Context, d store.Draft) (*store.Agent, error) {
	if err := validateDraft(d); err != nil {
		return nil, err
	}
	a, err := s.store.CreateAgent(ctx, d)
	if err != nil {
		return nil, translate(err)
	}
	return a, nil
}

// PublishVersion adds a new revision of an existing listing. The next
// version number is assigned by the store inside the insert transaction.
func (s *Service) PublishVersion(ctx context.Context, id string, d store.Draft) (*store.Agent, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := validateDraft(d); err != nil {
		return nil, err
	}
	a, err := s.store.PublishVersion(ctx, id, d)
	if err != nil {
		return nil, translate(err)
	}
	return a, nil
}

// validateDraft applies boundary validation, mapping failures to
// InvalidParameter.
func validateDraft(d store.Draft) error {
	if err := validate.Name(d.Name); err != nil {
		return invalidParameter("%v", err)
	}
	if err := validate.Description(d.Description); err != nil {
		return invalidParameter("%v", err)
	}
	if err := validate.Author(d.Author); err != nil {
		return invalidParameter("%v", err)
	}
	if err := validate.Terms("keyword", d.Keywords); err != nil {
		return invalidParameter("%v", err)
	}
	if err := validate.Terms("category", d.Categories); err != nil {
		return invalidParameter("%v", err)
	}
	if err := validate.Graph(d.Graph); err != nil {
		return invalidParameter("%v", err)
	}
	return nil
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return invalidParameter("listing id is required")
	}
	return nil
}
