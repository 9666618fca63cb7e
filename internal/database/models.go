package database

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Resume 表示持久化的简历文档。Data 保存完整的 ResumeData JSON。
type Resume struct {
	ID        string         `gorm:"primaryKey;size:36"`
	Title     string         `gorm:"size:255"`
	Data      datatypes.JSON `gorm:"type:jsonb"`
	Locked    bool           `gorm:"default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Migrate 创建或更新数据表结构。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Resume{})
}
