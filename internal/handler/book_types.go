package handler

import "github.com/google/uuid"

type CreateBookRequest struct {
	Title string `json:"title" binding:"required,min=1"`
	// Year zero is a legal value, so presence is not a binding
	// concern; the range check happens in validation.
	PublicationYear int       `json:"publication_year"`
	AuthorID        uuid.UUID `json:"author_id" binding:"required"`
}

type UpdateBookRequest struct {
	Title           *string    `json:"title" binding:"omitempty,min=1"`
	PublicationYear *int       `json:"publication_year"`
	AuthorID        *uuid.UUID `json:"author_id"`
}

// UpdateBookByBodyRequest is the legacy variant that carries the book
// id in the payload instead of the path.
type UpdateBookByBodyRequest struct {
	ID              uuid.UUID  `json:"id" binding:"required"`
	Title           *string    `json:"title" binding:"omitempty,min=1"`
	PublicationYear *int       `json:"publication_year"`
	AuthorID        *uuid.UUID `json:"author_id"`
}

type DeleteBookByBodyRequest struct {
	ID uuid.UUID `json:"id" binding:"required"`
}

type Book struct {
	ID              uuid.UUID     `json:"id"`
	Title           string        `json:"title"`
	PublicationYear int           `json:"publication_year"`
	Author          AuthorSummary `json:"author"`
}

type BookResponse struct {
	Data Book `json:"data"`
}

type BookSummary struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	PublicationYear int       `json:"publication_year"`
}

type ListBooksResponse struct {
	Data []Book `json:"data"`
}

type AuthorSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
