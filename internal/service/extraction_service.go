package service

import (
	"context"

	"household-sync-be/internal/dto"
	"household-sync-be/internal/pkg/logger"
	"household-sync-be/pkg/extract"
)

type IExtractionService interface {
	ExtractIngredients(ctx context.Context, req *dto.ExtractTextRequest) *dto.ExtractIngredientsResponse
	ParseRecipeNotes(ctx context.Context, req *dto.ExtractTextRequest) *dto.ParseRecipeNotesResponse
}

type extractionService struct {
	parser *extract.RecipeNoteParser
	logger logger.ILogger
}

func NewExtractionService(parser *extract.RecipeNoteParser, log logger.ILogger) IExtractionService {
	return &extractionService{
		parser: parser,
		logger: log,
	}
}

// Extraction never fails; malformed text simply yields fewer results.
func (s *extractionService) ExtractIngredients(ctx context.Context, req *dto.ExtractTextRequest) *dto.ExtractIngredientsResponse {
	ingredients := extract.ExtractIngredients(req.Text)

	s.logger.Debug("ExtractionService", "Ingredients extracted", map[string]interface{}{
		"input_len": len(req.Text),
		"count":     len(ingredients),
	})
	return &dto.ExtractIngredientsResponse{Ingredients: ingredients}
}

func (s *extractionService) ParseRecipeNotes(ctx context.Context, req *dto.ExtractTextRequest) *dto.ParseRecipeNotesResponse {
	notes := s.parser.Parse(req.Text)

	s.logger.Debug("ExtractionService", "Recipe notes parsed", map[string]interface{}{
		"input_len": len(req.Text),
		"count":     len(notes),
	})
	return &dto.ParseRecipeNotesResponse{Notes: notes}
}
