package db

import (
	"time"

	"github.com/sheelganvir/lastnote/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindBySubjectID(subjectID string) (models.User, bool, error) {
	var user models.User
	result := repo.database.Where("subject_id = ?", subjectID).Limit(1).Find(&user)
	if result.Error != nil {
		return models.User{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.User{}, false, nil
	}
	return user, true, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) UpdateBySubjectID(subjectID string, updates map[string]any) error {
	return repo.database.Model(&models.User{}).Where("subject_id = ?", subjectID).Updates(updates).Error
}

// TouchLastCheckIn resets the delivery countdown for the user.
func (repo *UserRepository) TouchLastCheckIn(subjectID string, checkedInAt time.Time) error {
	return repo.database.Model(&models.User{}).Where("subject_id = ?", subjectID).Updates(map[string]any{
		"last_check_in": checkedInAt,
	}).Error
}

// ListActiveWithCheckIn returns the sweep candidate users: active
// accounts that have checked in at least once.
func (repo *UserRepository) ListActiveWithCheckIn() ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.
		Where("is_active = ? AND last_check_in IS NOT NULL", true).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
