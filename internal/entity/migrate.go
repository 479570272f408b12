package entity

import "gorm.io/gorm"

func MigrateTable(db *gorm.DB) error {
	return db.AutoMigrate(
		&Quest{},
		&QuestProgress{},
		&UserStats{},
		&ChannelConfig{},
	)
}
