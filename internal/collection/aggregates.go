package collection

import (
	"strings"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// Derived aggregates are pure scans over the collections currently in
// memory: always consistent with loaded data, only as fresh as the
// last fetch, never persisted.

// CategoryBookCounts returns books-per-category keyed by category ID.
func CategoryBookCounts(categories []entities.Category, books []entities.Book) map[uint]int64 {
	counts := make(map[uint]int64, len(categories))
	for _, category := range categories {
		counts[category.ID] = 0
	}
	for _, book := range books {
		if book.CategoryID != nil {
			counts[*book.CategoryID]++
		}
	}
	return counts
}

// AuthorBookCounts returns books-per-author keyed by author ID. Books
// reference authors by free-text name, so the match is by name.
func AuthorBookCounts(authors []entities.Author, books []entities.Book) map[uint]int64 {
	counts := make(map[uint]int64, len(authors))
	for _, author := range authors {
		for _, book := range books {
			if strings.EqualFold(book.Author, author.Name) {
				counts[author.ID]++
			}
		}
	}
	return counts
}

// CountByStatus returns the number of books per publication status.
func CountByStatus(books []entities.Book) map[entities.BookStatus]int64 {
	counts := make(map[entities.BookStatus]int64)
	for _, book := range books {
		counts[book.Status]++
	}
	return counts
}
