package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/mrlokans/bookstore/internal/client"
	"github.com/mrlokans/bookstore/internal/entities"
)

func renderBooks(w io.Writer, books []entities.Book) error {
	if len(books) == 0 {
		_, err := fmt.Fprintln(w, "No books found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tPUBLISHER\tYEAR\tPRICE\tQTY\tGENRE\tSHELF")
	for _, b := range books {
		year := "-"
		if b.Year != nil {
			year = strconv.Itoa(*b.Year)
		}
		genre := "-"
		if b.Genre != nil {
			genre = b.Genre.Name
		}
		shelf := "-"
		if b.Shelf != nil {
			shelf = fmt.Sprintf("%d (%s)", b.Shelf.Number, b.Shelf.Location)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			b.ID, b.Title, b.Author, b.Publisher, year, b.Price, b.Quantity, genre, shelf)
	}
	return tw.Flush()
}

func renderGenres(w io.Writer, genres []entities.Genre) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tGENRE")
	for _, g := range genres {
		fmt.Fprintf(tw, "%d\t%s\n", g.ID, g.Name)
	}
	return tw.Flush()
}

func renderShelves(w io.Writer, shelves []entities.Shelf) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNUMBER\tLOCATION")
	for _, s := range shelves {
		fmt.Fprintf(tw, "%d\t%d\t%s\n", s.ID, s.Number, s.Location)
	}
	return tw.Flush()
}

func renderNotice(w io.Writer, notice *client.Notice) {
	if notice == nil {
		return
	}
	fmt.Fprintf(w, "[%s] %s\n", notice.Level, notice.Message)
}
