package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shelfwise/catalog-api/internal/model"
	"github.com/shelfwise/catalog-api/internal/validation"
)

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  nil,
	})
}

// parseIntFilter reads an integer query value. A missing or malformed
// value is ignored, matching the fail-open filter rule.
func parseIntFilter(c *gin.Context, key string) *int {
	s := c.Query(key)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func toBookResponse(b model.Book) BookResponse {
	return BookResponse{Data: toBook(b)}
}

func toBook(b model.Book) Book {
	return Book{
		ID:              b.ID,
		Title:           b.Title,
		PublicationYear: b.PublicationYear,
		Author: AuthorSummary{
			ID:   b.Author.ID,
			Name: b.Author.Name,
		},
	}
}

func toBookSummary(b model.Book) BookSummary {
	return BookSummary{
		ID:              b.ID,
		Title:           b.Title,
		PublicationYear: b.PublicationYear,
	}
}
