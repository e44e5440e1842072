package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/humanbelnik/kinopick/internal/model"
	"github.com/spf13/cobra"
)

func newPickCommand(ctx *commandContext) *cobra.Command {
	var genre string
	var confirm bool

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick a random unwatched movie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := ctx.movies(cmd)
			if err != nil {
				return err
			}

			var pick model.Pick
			picked, err := uc.Pick(commandCtx(cmd), genre)
			if err != nil {
				return err
			}
			pick.Set(picked)

			out := cmd.OutOrStdout()
			current := pick.Current()
			if current == nil {
				fmt.Fprintln(out, "No unwatched movies match.")
				return nil
			}
			printPicked(out, current)

			if !confirm || !askYesNo(cmd.InOrStdin(), out, "Mark as watched? [y/N] ") {
				return nil
			}

			updated, err := uc.MarkViewed(commandCtx(cmd), current.Movie.Title)
			if err != nil {
				return err
			}
			pick.Clear()
			if updated {
				fmt.Fprintf(out, "Marked %q as watched.\n", current.Movie.Title)
			} else {
				fmt.Fprintf(out, "%q was already watched.\n", current.Movie.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&genre, "genre", "g", "", "Only pick movies whose genre contains this text")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Ask whether to mark the pick as watched")

	return cmd
}

func printPicked(w io.Writer, p *model.PickedMovie) {
	fmt.Fprintln(w, renderPick(p))
}

func askYesNo(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
