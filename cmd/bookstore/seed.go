package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deppfellow/bookstore/internal/lib/utils"
	"github.com/deppfellow/bookstore/internal/model/book"
	"github.com/deppfellow/bookstore/internal/repository"
)

func year(y int) *book.Year { return book.NewYear(y) }

// sampleBooks is the fixed data set inserted by the seed command.
var sampleBooks = []book.CreateBookPayload{
	{Fields: book.Fields{Title: "Dune", Author: "Frank Herbert", PublishYear: year(1965)}},
	{Fields: book.Fields{Title: "The Go Programming Language", Author: "Alan A. A. Donovan", PublishYear: year(2015)}},
	{Fields: book.Fields{Title: "Clean Code", Author: "Robert C. Martin", PublishYear: year(2008)}},
	{Fields: book.Fields{Title: "The Pragmatic Programmer", Author: "Andrew Hunt", PublishYear: year(1999)}},
	{Fields: book.Fields{Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", PublishYear: year(2017)}},
}

func newSeedCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dryRun {
				return utils.PrintJSON(cmd.OutOrStdout(), sampleBooks)
			}
			return runSeed(cmd)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the sample books without inserting them")

	return cmd
}

func runSeed(cmd *cobra.Command) error {
	srv, err := newApp()
	if err != nil {
		return err
	}
	defer func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			srv.Logger.Error().Err(err).Msg("failed to release resources")
		}
	}()

	repo := repository.NewBookRepository(srv)

	inserted := make([]*book.Book, 0, len(sampleBooks))
	for i := range sampleBooks {
		created, err := repo.CreateBook(cmd.Context(), &sampleBooks[i])
		if err != nil {
			return fmt.Errorf("seed stopped after %d books: %w", len(inserted), err)
		}
		inserted = append(inserted, created)
	}

	srv.Logger.Info().Int("count", len(inserted)).Msg("seeded books")

	return utils.PrintJSON(cmd.OutOrStdout(), inserted)
}
