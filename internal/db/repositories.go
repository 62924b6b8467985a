package db

import "gorm.io/gorm"

type Repositories struct {
	Users        *UserRepository
	Notes        *NoteRepository
	DeliveryLogs *DeliveryLogRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(database),
		Notes:        NewNoteRepository(database),
		DeliveryLogs: NewDeliveryLogRepository(database),
	}
}
