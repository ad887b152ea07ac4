package entity

import (
	"time"

	"household-sync-be/pkg/chorewatch"
)

type Group struct {
	Id        string
	Name      string
	Chores    []chorewatch.Chore
	Groceries []chorewatch.GroceryItem
	CreatedAt time.Time
	UpdatedAt *time.Time
}
