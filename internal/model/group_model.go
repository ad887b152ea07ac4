package model

import (
	"time"

	"household-sync-be/pkg/chorewatch"

	"gorm.io/datatypes"
)

// Group is the shared household document. Chores and groceries live inside
// the row as JSONB; the whole document is replaced on every write.
type Group struct {
	Id        string                                      `gorm:"type:varchar(64);primaryKey"`
	Name      string                                      `gorm:"type:varchar(255);not null"`
	Chores    datatypes.JSONSlice[chorewatch.Chore]       `gorm:"type:jsonb"`
	Groceries datatypes.JSONSlice[chorewatch.GroceryItem] `gorm:"type:jsonb"`
	CreatedAt time.Time                                   `gorm:"autoCreateTime"`
	UpdatedAt time.Time                                   `gorm:"autoUpdateTime"`
}

func (Group) TableName() string {
	return "groups"
}
