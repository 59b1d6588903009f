package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Aggregate validation errors
	ErrNameEmpty        = errors.New("recipe name must not be empty")
	ErrNameTooLong      = errors.New("recipe name must not exceed 200 characters")
	ErrYieldOutOfRange  = errors.New("recipe yield must be between 1 and 100")
	ErrNotesTooLong     = errors.New("recipe notes must not exceed 5000 characters")
	ErrTagTooLong       = errors.New("tag must not exceed 25 characters")
	ErrTooManyTags     = errors.New("recipe must not have more than 10 tags")
	ErrInvalidPortions = errors.New("requested portions must be greater than 0")

	// Content list errors
	ErrContentIDMissing    = errors.New("content item id must not be empty")
	ErrNegativePosition    = errors.New("content item position must not be negative")
	ErrIngredientNameEmpty = errors.New("ingredient name must not be empty")
	ErrNegativeAmount      = errors.New("ingredient amount must not be negative")
	ErrSectionNameEmpty    = errors.New("section caption must not be empty")
	ErrUnknownContentType  = errors.New("unknown content type")

	// Source errors
	ErrSourceBookTitleEmpty   = errors.New("book source title must not be empty")
	ErrSourceBookTitleTooLong = errors.New("book source title must not exceed 200 characters")
	ErrSourceBookPageTooLong  = errors.New("book source page must not exceed 50 characters")
	ErrSourceURLEmpty         = errors.New("url source must not be empty")
	ErrSourceURLTooLong       = errors.New("url source must not exceed 2000 characters")
	ErrUnknownSourceType      = errors.New("unknown source type")

	// Repository errors
	ErrRecipeNotFound = errors.New("recipe not found")
)
