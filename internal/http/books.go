package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// BooksController serves the public catalog and the admin book CRUD.
type BooksController struct {
	books      BookStore
	categories CategoryStore
	auditor    Auditor
}

func NewBooksController(books BookStore, categories CategoryStore, auditor Auditor) *BooksController {
	return &BooksController{books: books, categories: categories, auditor: auditor}
}

// ListPublished returns the published catalog, newest first. This is
// the endpoint the mobile and web clients hydrate their book
// collections from.
func (controller *BooksController) ListPublished(c *gin.Context) {
	books, err := controller.books.GetPublishedBooks()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// ListAll returns every book regardless of status. Admin only.
func (controller *BooksController) ListAll(c *gin.Context) {
	books, err := controller.books.GetAllBooks()
	if err != nil {
		respondInternalError(c, err, "list all books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// GetBook returns a single book by ID.
func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.books.GetBookByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// ListByCategory returns the published books of one category.
func (controller *BooksController) ListByCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	books, err := controller.books.GetBooksByCategory(id)
	if err != nil {
		respondInternalError(c, err, "list books by category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// Search matches the query against title, author and description.
func (controller *BooksController) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondBadRequest(c, "q query parameter is required")
		return
	}

	books, err := controller.books.SearchBooks(query)
	if err != nil {
		respondInternalError(c, err, "search books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

type bookRequest struct {
	Title           string  `json:"title" binding:"required"`
	Author          string  `json:"author" binding:"required"`
	CategoryID      *uint   `json:"category_id"`
	Description     string  `json:"description"`
	CoverURL        string  `json:"cover_url"`
	AudioURL        string  `json:"audio_url"`
	DurationSeconds int     `json:"duration_in_seconds"`
	Status          *string `json:"status"`
}

// CreateBook adds a catalog entry. New books default to draft status
// so they stay invisible to listeners until published.
func (controller *BooksController) CreateBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title and author are required")
		return
	}

	status := entities.BookStatusDraft
	if req.Status != nil {
		s, ok := parseBookStatus(*req.Status)
		if !ok {
			respondBadRequest(c, "invalid status")
			return
		}
		status = s
	}

	book := &entities.Book{
		Title:           req.Title,
		Author:          req.Author,
		CategoryID:      req.CategoryID,
		Description:     req.Description,
		CoverURL:        req.CoverURL,
		AudioURL:        req.AudioURL,
		DurationSeconds: req.DurationSeconds,
		Status:          status,
	}
	if err := controller.resolveCategory(book); err != nil {
		respondBadRequest(c, "unknown category")
		return
	}

	if err := controller.books.CreateBook(book); err != nil {
		controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventBook, "create", book.Title, 0, err)
		respondInternalError(c, err, "create book")
		return
	}

	controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventBook, "create", book.Title, book.ID, nil)
	respondCreated(c, book)
}

type bookPatchRequest struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	CategoryID      *uint   `json:"category_id"`
	Description     *string `json:"description"`
	CoverURL        *string `json:"cover_url"`
	AudioURL        *string `json:"audio_url"`
	DurationSeconds *int    `json:"duration_in_seconds"`
	Status          *string `json:"status"`
}

// UpdateBook patches only the fields present in the request body.
func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req bookPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid book payload")
		return
	}

	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Author != nil {
		fields["author"] = *req.Author
	}
	if req.CategoryID != nil {
		fields["category_id"] = *req.CategoryID
		if category, err := controller.categories.GetCategoryByID(*req.CategoryID); err == nil {
			fields["category"] = category.Name
		} else {
			respondBadRequest(c, "unknown category")
			return
		}
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.CoverURL != nil {
		fields["cover_url"] = *req.CoverURL
	}
	if req.AudioURL != nil {
		fields["audio_url"] = *req.AudioURL
	}
	if req.DurationSeconds != nil {
		fields["duration_in_seconds"] = *req.DurationSeconds
	}
	if req.Status != nil {
		status, ok := parseBookStatus(*req.Status)
		if !ok {
			respondBadRequest(c, "invalid status")
			return
		}
		fields["status"] = status
	}
	if len(fields) == 0 {
		respondBadRequest(c, "no fields to update")
		return
	}

	book, err := controller.books.UpdateBook(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventBook, "update", "", id, err)
		respondInternalError(c, err, "update book")
		return
	}

	controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventBook, "update", book.Title, id, nil)
	c.JSON(http.StatusOK, book)
}

// DeleteBook soft-deletes a book from the catalog.
func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := controller.books.GetBookByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "delete book")
		return
	}

	if err := controller.books.DeleteBook(id); err != nil {
		controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventBook, "delete", "", id, err)
		respondInternalError(c, err, "delete book")
		return
	}

	controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventBook, "delete", "", id, nil)
	respondSuccess(c, "book deleted")
}

// resolveCategory denormalizes the category name onto the book row.
func (controller *BooksController) resolveCategory(book *entities.Book) error {
	if book.CategoryID == nil {
		return nil
	}
	category, err := controller.categories.GetCategoryByID(*book.CategoryID)
	if err != nil {
		return err
	}
	book.Category = category.Name
	return nil
}

func parseBookStatus(s string) (entities.BookStatus, bool) {
	switch entities.BookStatus(s) {
	case entities.BookStatusDraft, entities.BookStatusPublished, entities.BookStatusArchived:
		return entities.BookStatus(s), true
	}
	return "", false
}
