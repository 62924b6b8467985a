package db

import (
	"github.com/sheelganvir/lastnote/internal/models"
	"gorm.io/gorm"
)

type DeliveryLogRepository struct {
	database *gorm.DB
}

func NewDeliveryLogRepository(database *gorm.DB) *DeliveryLogRepository {
	return &DeliveryLogRepository{database: database}
}

// Append writes one audit record. Entries are never updated or
// deleted afterwards.
func (repo *DeliveryLogRepository) Append(entry *models.DeliveryLogEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *DeliveryLogRepository) ListByNoteID(noteID string) ([]models.DeliveryLogEntry, error) {
	entries := make([]models.DeliveryLogEntry, 0)
	if err := repo.database.
		Where("note_id = ?", noteID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
