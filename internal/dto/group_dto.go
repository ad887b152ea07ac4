package dto

import (
	"time"

	"household-sync-be/pkg/chorewatch"
)

type UpsertGroupRequest struct {
	Id        string                   `json:"id" validate:"required,max=64"`
	Name      string                   `json:"name" validate:"required,max=255"`
	Chores    []chorewatch.Chore       `json:"chores" validate:"dive"`
	Groceries []chorewatch.GroceryItem `json:"groceries" validate:"dive"`
}

type UpsertGroupResponse struct {
	Id string `json:"id"`
}

type ShowGroupResponse struct {
	Id        string                   `json:"id"`
	Name      string                   `json:"name"`
	Chores    []chorewatch.Chore       `json:"chores"`
	Groceries []chorewatch.GroceryItem `json:"groceries"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt *time.Time               `json:"updated_at"`
}
