package dto

import "household-sync-be/pkg/extract"

type ExtractTextRequest struct {
	Text string `json:"text"`
}

type ExtractIngredientsResponse struct {
	Ingredients []string `json:"ingredients"`
}

type ParseRecipeNotesResponse struct {
	Notes []extract.RecipeNote `json:"notes"`
}
