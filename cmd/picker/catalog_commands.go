package main

import (
	"errors"
	"fmt"
	"os"

	usecase_movie "github.com/humanbelnik/kinopick/internal/usecase/movie"
	"github.com/spf13/cobra"
)

func newViewedCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewed <title>",
		Short: "Mark a movie as watched",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := ctx.movies(cmd)
			if err != nil {
				return err
			}

			title := args[0]
			updated, err := uc.MarkViewed(commandCtx(cmd), title)
			if errors.Is(err, usecase_movie.ErrMovieNotFound) {
				return fmt.Errorf("no movie titled %q in the catalog", title)
			}
			if err != nil {
				return err
			}

			if updated {
				fmt.Fprintf(cmd.OutOrStdout(), "Marked %q as watched.\n", title)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%q was already watched.\n", title)
			}
			return nil
		},
	}
}

func newGenresCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List the genres present in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := ctx.movies(cmd)
			if err != nil {
				return err
			}

			genres, err := uc.Genres(commandCtx(cmd))
			if err != nil {
				return err
			}
			if len(genres) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No genres.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderGenres(genres))
			return nil
		},
	}
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var unwatched bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := ctx.movies(cmd)
			if err != nil {
				return err
			}

			catalog, err := uc.List(commandCtx(cmd))
			if err != nil {
				return err
			}
			if unwatched {
				catalog = usecase_movie.Eligible(catalog, "")
			}
			if len(catalog) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Catalog is empty.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderCatalog(catalog))
			return nil
		},
	}

	cmd.Flags().BoolVar(&unwatched, "unwatched", false, "Only show movies not yet watched")

	return cmd
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the catalog with a table file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := ctx.movies(cmd)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			if err := uc.Replace(commandCtx(cmd), f); err != nil {
				return err
			}

			catalog, err := uc.List(commandCtx(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d movies.\n", len(catalog))
			return nil
		},
	}
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the catalog as a table (stdout by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := ctx.movies(cmd)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return uc.Export(commandCtx(cmd), cmd.OutOrStdout())
			}

			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			if err := uc.Export(commandCtx(cmd), f); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}
}
