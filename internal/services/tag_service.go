package services

import (
	"cookbook/internal/models"
	"cookbook/internal/repositories"
)

// TagService handles business logic related to tags.
type TagService struct {
	repo repositories.TagRepository
}

// NewTagService creates a new TagService.
func NewTagService(repo repositories.TagRepository) *TagService {
	return &TagService{
		repo: repo,
	}
}

// List retrieves the owner's tags, name descending.
func (s *TagService) List(ownerID string) ([]models.Tag, error) {
	return s.repo.ListByOwner(ownerID)
}

// Create creates a new tag stamped with the owner's identity.
func (s *TagService) Create(ownerID, name string) (*models.Tag, error) {
	tag := &models.Tag{
		UserID: ownerID,
		Name:   name,
	}
	if err := s.repo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}
