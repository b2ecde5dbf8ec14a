package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IslamGh2004/sawtlib/internal/database/progress"
)

// ProgressController persists and serves per-book listening positions.
type ProgressController struct {
	progress ProgressStore
	books    BookStore
}

func NewProgressController(progressStore ProgressStore, books BookStore) *ProgressController {
	return &ProgressController{progress: progressStore, books: books}
}

type saveProgressRequest struct {
	BookID          uint `json:"book_id" binding:"required"`
	ProgressSeconds *int `json:"progress_in_seconds" binding:"required"`
}

// Save upserts the listening position for (user, book). Concurrent
// saves from two devices resolve to the last write; there is never
// more than one row per pair.
func (controller *ProgressController) Save(c *gin.Context) {
	var req saveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "book_id and progress_in_seconds are required")
		return
	}
	if *req.ProgressSeconds < 0 {
		respondBadRequest(c, "progress_in_seconds cannot be negative")
		return
	}

	book, err := controller.books.GetBookByID(req.BookID)
	if err != nil {
		respondNotFound(c, "book")
		return
	}

	if err := controller.progress.Upsert(GetUserID(c), req.BookID, *req.ProgressSeconds); err != nil {
		respondInternalError(c, err, "save progress")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"book_id":             req.BookID,
		"progress_in_seconds": *req.ProgressSeconds,
		"percentage":          progress.Percentage(*req.ProgressSeconds, book.DurationSeconds),
	})
}

// Get returns the listening position for one book, or zero progress
// when the user has not started it.
func (controller *ProgressController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	row, err := controller.progress.Get(GetUserID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"book_id": id, "progress_in_seconds": 0, "percentage": 0.0})
			return
		}
		respondInternalError(c, err, "get progress")
		return
	}

	totalSeconds := 0
	if book, err := controller.books.GetBookByID(id); err == nil {
		totalSeconds = book.DurationSeconds
	}

	c.JSON(http.StatusOK, gin.H{
		"book_id":             id,
		"progress_in_seconds": row.ProgressSeconds,
		"percentage":          progress.Percentage(row.ProgressSeconds, totalSeconds),
		"last_listened_at":    row.LastListenedAt,
	})
}

// List returns every book the user has started, most recent first.
func (controller *ProgressController) List(c *gin.Context) {
	rows, err := controller.progress.GetForUser(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list progress")
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": rows, "count": len(rows)})
}

// Delete clears the listening position for one book.
func (controller *ProgressController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.progress.Delete(GetUserID(c), id); err != nil {
		respondInternalError(c, err, "delete progress")
		return
	}
	respondSuccess(c, "progress cleared")
}
