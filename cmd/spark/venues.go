package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/tinytelemetry/spark/internal/model"
)

var (
	venuesLimit  int
	venuesByArea bool
)

var venuesCmd = &cobra.Command{
	Use:   "venues",
	Short: "Print the busiest venues from the sample data",
	Long: `Loads the venue dataset into an in-memory DuckDB store and prints the
busiest venues, or with --by-area the activity per neighborhood and category.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		data, err := loadDataset(ctx, cfg, logger)
		if err != nil {
			return err
		}
		store, err := openStore(ctx, data, cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		if venuesByArea {
			return printAreas(cmd.OutOrStdout(), store)
		}
		return printHottest(cmd.OutOrStdout(), store, venuesLimit)
	},
}

func init() {
	venuesCmd.Flags().IntVarP(&venuesLimit, "limit", "n", 10, "number of venues to list")
	venuesCmd.Flags().BoolVar(&venuesByArea, "by-area", false, "aggregate by neighborhood and category")
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func printHottest(w io.Writer, q model.VenueQuerier, limit int) error {
	if limit <= 0 {
		return fmt.Errorf("invalid --limit: %d", limit)
	}
	venues, err := q.HottestVenues(limit)
	if err != nil {
		return err
	}
	total, err := q.VenueCount()
	if err != nil {
		return err
	}
	t := newTable("#", "Venue", "People", "Heat")
	for i, v := range venues {
		t.Row(strconv.Itoa(i+1), v.Emoji+" "+v.Name, strconv.FormatInt(v.People, 10), string(v.Intensity))
	}
	_, err = fmt.Fprintf(w, "%s\n%d of %d venues\n", t.String(), len(venues), total)
	return err
}

func printAreas(w io.Writer, q model.VenueQuerier) error {
	areas, err := q.NeighborhoodHeat()
	if err != nil {
		return err
	}
	cats, err := q.CategoryCounts()
	if err != nil {
		return err
	}
	at := newTable("Neighborhood", "Venues", "People", "Hottest")
	for _, a := range areas {
		at.Row(a.Neighborhood, strconv.FormatInt(a.Venues, 10), strconv.FormatInt(a.People, 10), string(a.Hottest))
	}
	ct := newTable("Category", "Venues")
	for _, c := range cats {
		ct.Row(c.Category, strconv.FormatInt(c.Count, 10))
	}
	_, err = fmt.Fprintf(w, "%s\n%s\n", at.String(), ct.String())
	return err
}
