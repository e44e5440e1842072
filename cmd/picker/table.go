package main

import (
	"fmt"
	"strings"

	"github.com/humanbelnik/kinopick/internal/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTableWriter() table.Writer {
	style := table.StyleRounded
	style.Format.Footer = text.FormatDefault

	tw := table.NewWriter()
	tw.SetStyle(style)
	return tw
}

// renderCatalog prints one numbered row per record with a count in the footer.
func renderCatalog(c model.Catalog) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"#", "Title", "Genres", "Viewed"})
	for i, r := range c {
		viewed := ""
		if r.Viewed {
			viewed = "✓"
		}
		tw.AppendRow(table.Row{i + 1, r.Title, strings.Join(r.Genres, ", "), viewed})
	}
	tw.AppendFooter(table.Row{"", fmt.Sprintf("%d movies", len(c)), "", ""})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignRight},
		{Number: 4, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
	})
	return tw.Render()
}

func renderGenres(genres []string) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"Genre"})
	for _, g := range genres {
		tw.AppendRow(table.Row{g})
	}
	return tw.Render()
}

// renderPick lays the pick out as a two-column card, skipping the poster when there is none.
func renderPick(p *model.PickedMovie) string {
	tw := newTableWriter()
	tw.SetTitle(p.Movie.Title)
	if len(p.Movie.Genres) > 0 {
		tw.AppendRow(table.Row{"Genres", strings.Join(p.Movie.Genres, ", ")})
	}
	tw.AppendRow(table.Row{"About", p.Metadata.Description})
	if p.Metadata.HasPoster() {
		tw.AppendRow(table.Row{"Poster", p.Metadata.PosterURL})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Colors: text.Colors{text.Bold}, WidthMax: 12},
		{Number: 2, WidthMax: 72},
	})
	return tw.Render()
}
