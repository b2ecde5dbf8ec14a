package exporters

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// Exportable resources, matched against the :resource URL parameter.
const (
	ResourceBooks      = "books"
	ResourceUsers      = "users"
	ResourceCategories = "categories"
	ResourceAuthors    = "authors"
	ResourceProgress   = "progress"
)

// IsExportable reports whether a resource name has a CSV export.
func IsExportable(resource string) bool {
	switch resource {
	case ResourceBooks, ResourceUsers, ResourceCategories, ResourceAuthors, ResourceProgress:
		return true
	}
	return false
}

// BookSource, UserSource, CategorySource and AuthorSource are the
// repository slices the exporter reads from.
type BookSource interface {
	GetAllBooks() ([]entities.Book, error)
}

type UserSource interface {
	GetAllUsers() ([]entities.User, error)
}

type CategorySource interface {
	GetAllCategories() ([]entities.Category, error)
}

type AuthorSource interface {
	GetAllAuthors() ([]entities.Author, error)
}

type ProgressSource interface {
	GetAll() ([]entities.ListeningProgress, error)
}

// CSVExporter writes catalog and account data as RFC 4180 CSV. Fields
// containing commas, quotes or newlines are quoted by the encoder, so
// free-text descriptions survive round trips through spreadsheets.
type CSVExporter struct {
	books      BookSource
	users      UserSource
	categories CategorySource
	authors    AuthorSource
	progress   ProgressSource
}

func NewCSVExporter(books BookSource, users UserSource, categories CategorySource, authors AuthorSource, progress ProgressSource) *CSVExporter {
	return &CSVExporter{books: books, users: users, categories: categories, authors: authors, progress: progress}
}

// Write streams one resource to w and returns the number of data rows
// written.
func (e *CSVExporter) Write(w io.Writer, resource string) (int, error) {
	switch resource {
	case ResourceBooks:
		return e.writeBooks(w)
	case ResourceUsers:
		return e.writeUsers(w)
	case ResourceCategories:
		return e.writeCategories(w)
	case ResourceAuthors:
		return e.writeAuthors(w)
	case ResourceProgress:
		return e.writeProgress(w)
	}
	return 0, fmt.Errorf("unknown export resource %q", resource)
}

func (e *CSVExporter) writeBooks(w io.Writer) (int, error) {
	books, err := e.books.GetAllBooks()
	if err != nil {
		return 0, fmt.Errorf("failed to load books: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{"id", "title", "author", "category", "description", "duration_in_seconds", "status", "created_at"}
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, book := range books {
		record := []string{
			strconv.FormatUint(uint64(book.ID), 10),
			book.Title,
			book.Author,
			book.Category,
			book.Description,
			strconv.Itoa(book.DurationSeconds),
			string(book.Status),
			formatTime(book.CreatedAt),
		}
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return len(books), cw.Error()
}

func (e *CSVExporter) writeUsers(w io.Writer) (int, error) {
	users, err := e.users.GetAllUsers()
	if err != nil {
		return 0, fmt.Errorf("failed to load users: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{"id", "email", "name", "phone", "city", "country", "is_banned", "last_sign_in_at", "created_at"}
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, user := range users {
		lastSignIn := ""
		if user.LastSignInAt != nil {
			lastSignIn = formatTime(*user.LastSignInAt)
		}
		record := []string{
			strconv.FormatUint(uint64(user.ID), 10),
			user.Email,
			user.Name,
			user.Phone,
			user.City,
			user.Country,
			strconv.FormatBool(user.IsBanned),
			lastSignIn,
			formatTime(user.CreatedAt),
		}
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return len(users), cw.Error()
}

func (e *CSVExporter) writeCategories(w io.Writer) (int, error) {
	categories, err := e.categories.GetAllCategories()
	if err != nil {
		return 0, fmt.Errorf("failed to load categories: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name", "description", "book_count"}); err != nil {
		return 0, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, category := range categories {
		record := []string{
			strconv.FormatUint(uint64(category.ID), 10),
			category.Name,
			category.Description,
			strconv.FormatInt(category.BookCount, 10),
		}
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return len(categories), cw.Error()
}

func (e *CSVExporter) writeAuthors(w io.Writer) (int, error) {
	authors, err := e.authors.GetAllAuthors()
	if err != nil {
		return 0, fmt.Errorf("failed to load authors: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name", "biography", "book_count"}); err != nil {
		return 0, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, author := range authors {
		record := []string{
			strconv.FormatUint(uint64(author.ID), 10),
			author.Name,
			author.Biography,
			strconv.FormatInt(author.BookCount, 10),
		}
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return len(authors), cw.Error()
}

func (e *CSVExporter) writeProgress(w io.Writer) (int, error) {
	rows, err := e.progress.GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to load progress: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "user_id", "book_id", "progress_in_seconds", "last_listened_at"}); err != nil {
		return 0, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			strconv.FormatUint(uint64(row.ID), 10),
			strconv.FormatUint(uint64(row.UserID), 10),
			strconv.FormatUint(uint64(row.BookID), 10),
			strconv.Itoa(row.ProgressSeconds),
			formatTime(row.LastListenedAt),
		}
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return len(rows), cw.Error()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
