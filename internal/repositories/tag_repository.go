package repositories

import "cookbook/internal/models"

// TagRepository defines the interface for owner-scoped tag data access.
type TagRepository interface {
	ListByOwner(ownerID string) ([]models.Tag, error)
	GetByIDs(ownerID string, ids []string) ([]models.Tag, error)
	Create(tag *models.Tag) error
}
