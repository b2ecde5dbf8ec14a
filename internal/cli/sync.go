package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/IslamGh2004/sawtlib/internal/client"
	"github.com/IslamGh2004/sawtlib/internal/collection"
	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// newSyncCommand pulls the public catalog from a running server into
// local collections and prints a summary with derived counts.
func newSyncCommand() *cobra.Command {
	var (
		serverURL string
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch the catalog from a server and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := client.New(serverURL)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			notifier := collection.FuncNotifier(func(n collection.Notification) {
				if n.IsError {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", n.Title, n.Description)
				}
			})

			booksCol := collection.New(collection.Config[entities.Book]{
				Resource: "books",
				Fetch: func(ctx context.Context) ([]entities.Book, error) {
					var out []entities.Book
					err := api.List(ctx, "/api/books", "books", &out)
					return out, err
				},
				ID:       func(b entities.Book) uint { return b.ID },
				Notifier: notifier,
			})
			categoriesCol := collection.New(collection.Config[entities.Category]{
				Resource: "categories",
				Fetch: func(ctx context.Context) ([]entities.Category, error) {
					var out []entities.Category
					err := api.List(ctx, "/api/categories", "categories", &out)
					return out, err
				},
				ID:       func(c entities.Category) uint { return c.ID },
				Notifier: notifier,
			})
			authorsCol := collection.New(collection.Config[entities.Author]{
				Resource: "authors",
				Fetch: func(ctx context.Context) ([]entities.Author, error) {
					var out []entities.Author
					err := api.List(ctx, "/api/authors", "authors", &out)
					return out, err
				},
				ID:       func(a entities.Author) uint { return a.ID },
				Notifier: notifier,
			})

			if err := booksCol.Fetch(ctx); err != nil {
				return fmt.Errorf("failed to fetch books: %w", err)
			}
			if err := categoriesCol.Fetch(ctx); err != nil {
				return fmt.Errorf("failed to fetch categories: %w", err)
			}
			if err := authorsCol.Fetch(ctx); err != nil {
				return fmt.Errorf("failed to fetch authors: %w", err)
			}

			books := booksCol.Items()
			categories := categoriesCol.Items()
			authors := authorsCol.Items()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Books:      %d\n", len(books))
			fmt.Fprintf(out, "Categories: %d\n", len(categories))
			fmt.Fprintf(out, "Authors:    %d\n", len(authors))

			byStatus := collection.CountByStatus(books)
			fmt.Fprintf(out, "Published:  %d\n", byStatus[entities.BookStatusPublished])

			counts := collection.CategoryBookCounts(categories, books)
			for _, category := range categories {
				fmt.Fprintf(out, "  %-20s %d\n", category.Name, counts[category.ID])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "http://localhost:8288", "Base URL of the sawtlib server")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "Overall timeout for the sync")
	return cmd
}
