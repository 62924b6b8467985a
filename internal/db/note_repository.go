package db

import (
	"time"

	"github.com/sheelganvir/lastnote/internal/models"
	"gorm.io/gorm"
)

type NoteRepository struct {
	database *gorm.DB
}

func NewNoteRepository(database *gorm.DB) *NoteRepository {
	return &NoteRepository{database: database}
}

func (repo *NoteRepository) Create(note *models.Note) error {
	return repo.database.Create(note).Error
}

func (repo *NoteRepository) ListByUser(userID uint) ([]models.Note, error) {
	notes := make([]models.Note, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("updated_at DESC, id DESC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (repo *NoteRepository) FindByNoteID(noteID string) (models.Note, bool, error) {
	var note models.Note
	result := repo.database.Where("note_id = ?", noteID).Limit(1).Find(&note)
	if result.Error != nil {
		return models.Note{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Note{}, false, nil
	}
	return note, true, nil
}

func (repo *NoteRepository) FindByNoteIDAndUser(noteID string, userID uint) (models.Note, bool, error) {
	var note models.Note
	result := repo.database.Where("note_id = ? AND user_id = ?", noteID, userID).Limit(1).Find(&note)
	if result.Error != nil {
		return models.Note{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Note{}, false, nil
	}
	return note, true, nil
}

func (repo *NoteRepository) Save(note *models.Note) error {
	return repo.database.Save(note).Error
}

func (repo *NoteRepository) DeleteByNoteIDAndUser(noteID string, userID uint) (bool, error) {
	result := repo.database.Where("note_id = ? AND user_id = ?", noteID, userID).Delete(&models.Note{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListDeliverable returns the sweep candidate notes for one user:
// saved and not yet delivered.
func (repo *NoteRepository) ListDeliverable(userID uint) ([]models.Note, error) {
	notes := make([]models.Note, 0)
	if err := repo.database.
		Where("user_id = ? AND status = ? AND is_delivered = ?", userID, models.NoteStatusSaved, false).
		Order("created_at ASC, id ASC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// MarkDelivered flips the note to delivered only if it was not
// delivered before, so overlapping sweeps cannot record the same
// delivery twice. Reports whether this caller won the update.
func (repo *NoteRepository) MarkDelivered(noteID string, deliveredAt time.Time, results models.DeliveryResults) (bool, error) {
	result := repo.database.Model(&models.Note{}).
		Where("note_id = ? AND is_delivered = ?", noteID, false).
		Select("is_delivered", "status", "delivered_at", "delivery_results").
		Updates(models.Note{
			IsDelivered:     true,
			Status:          models.NoteStatusDelivered,
			DeliveredAt:     &deliveredAt,
			DeliveryResults: &results,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
