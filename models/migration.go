package models

import (
	"github.com/benela/benela_backend/config"
)

// AllModels in migration order; gorm reorders by foreign key dependency anyway.
func AllModels() []interface{} {
	return []interface{}{
		&Transaction{}, &Invoice{}, &Budget{},
		&Department{}, &Employee{}, &Position{},
		&Project{}, &KanbanColumn{}, &KanbanTask{},
		&ClientOrg{}, &Subscription{}, &Payment{}, &AdminNotification{}, &ClientActivity{},
		&AdminUser{},
	}
}

func MigrateTable() error {
	db := config.GetDB()
	return db.AutoMigrate(AllModels()...)
}
