package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mrlokans/bookstore/internal/client"
	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/entities"
)

type apiFlags struct {
	APIURL  string
	Timeout time.Duration
}

func (f *apiFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.APIURL, "api", f.APIURL, "Base URL of the inventory API")
	fs.DurationVar(&f.Timeout, "timeout", f.Timeout, "Per-request timeout")
}

func (f apiFlags) controller() *client.Controller {
	return client.NewController(client.NewAPI(f.APIURL, f.Timeout))
}

// AddBookCommand creates a book the way the add dialog does: genre and
// shelf default to the first ones the API lists.
type AddBookCommand struct {
	apiFlags
	Title     string
	Author    string
	Publisher string
	Year      int
	Price     string
	Quantity  int
	GenreID   uint
	ShelfID   uint

	out io.Writer
}

func NewAddBookCommand(cfg *config.Config) *AddBookCommand {
	return &AddBookCommand{
		apiFlags: apiFlags{APIURL: cfg.Client.APIURL, Timeout: cfg.Client.Timeout},
		out:      os.Stdout,
	}
}

func (cmd *AddBookCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add-book", flag.ContinueOnError)

	cmd.register(fs)
	fs.StringVar(&cmd.Title, "title", "", "Book title (required)")
	fs.StringVar(&cmd.Author, "author", "", "Author (required)")
	fs.StringVar(&cmd.Publisher, "publisher", "", "Publisher (required)")
	fs.IntVar(&cmd.Year, "year", 0, "Publication year")
	fs.StringVar(&cmd.Price, "price", "", "Price, e.g. 12.99 (required)")
	fs.IntVar(&cmd.Quantity, "quantity", entities.DefaultQuantity, "Copies in stock")
	fs.UintVar(&cmd.GenreID, "genre-id", 0, "Genre ID (defaults to the first genre)")
	fs.UintVar(&cmd.ShelfID, "shelf-id", 0, "Shelf ID (defaults to the first shelf)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s add-book -title <t> -author <a> -publisher <p> -price <n> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	var missing []string
	for name, value := range map[string]string{"title": cmd.Title, "author": cmd.Author, "publisher": cmd.Publisher, "price": cmd.Price} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, "-"+name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required flags not provided: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (cmd *AddBookCommand) Run() error {
	price, err := entities.NewPrice(cmd.Price)
	if err != nil {
		return err
	}

	ctx := context.Background()
	controller := cmd.controller()
	if err := controller.Start(ctx); err != nil {
		return err
	}

	controller.OpenAdd()
	err = controller.EditDraft(func(d *client.Draft) {
		d.Title = cmd.Title
		d.Author = cmd.Author
		d.Publisher = cmd.Publisher
		d.Price = price
		d.Quantity = cmd.Quantity
		if cmd.Year != 0 {
			d.Year = &cmd.Year
		}
		if cmd.GenreID != 0 {
			d.GenreID = &cmd.GenreID
		}
		if cmd.ShelfID != 0 {
			d.ShelfID = &cmd.ShelfID
		}
	})
	if err != nil {
		return err
	}

	book, err := controller.Save(ctx)
	if err != nil {
		renderNotice(cmd.out, controller.State().Notice)
		controller.CloseDialog()
		return err
	}

	fmt.Fprintf(cmd.out, "Created book %d: %q by %s\n", book.ID, book.Title, book.Author)
	return nil
}

// AddGenreCommand creates a genre
type AddGenreCommand struct {
	apiFlags
	Name string

	out io.Writer
}

func NewAddGenreCommand(cfg *config.Config) *AddGenreCommand {
	return &AddGenreCommand{
		apiFlags: apiFlags{APIURL: cfg.Client.APIURL, Timeout: cfg.Client.Timeout},
		out:      os.Stdout,
	}
}

func (cmd *AddGenreCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add-genre", flag.ContinueOnError)
	cmd.register(fs)
	fs.StringVar(&cmd.Name, "name", "", "Genre name (required, unique)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(cmd.Name) == "" {
		return fmt.Errorf("required flag -name not provided")
	}
	return nil
}

func (cmd *AddGenreCommand) Run() error {
	controller := cmd.controller()
	genre, err := controller.AddGenre(context.Background(), cmd.Name)
	if err != nil {
		renderNotice(cmd.out, controller.State().Notice)
		return err
	}
	fmt.Fprintf(cmd.out, "Created genre %d: %s\n", genre.ID, genre.Name)
	return nil
}

// AddShelfCommand creates a shelf
type AddShelfCommand struct {
	apiFlags
	Number   int
	Location string

	numberSet bool
	out       io.Writer
}

func NewAddShelfCommand(cfg *config.Config) *AddShelfCommand {
	return &AddShelfCommand{
		apiFlags: apiFlags{APIURL: cfg.Client.APIURL, Timeout: cfg.Client.Timeout},
		out:      os.Stdout,
	}
}

func (cmd *AddShelfCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add-shelf", flag.ContinueOnError)
	cmd.register(fs)
	fs.IntVar(&cmd.Number, "number", 0, "Shelf number (required, unique)")
	fs.StringVar(&cmd.Location, "location", "", "Where the shelf is (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "number" {
			cmd.numberSet = true
		}
	})

	if !cmd.numberSet {
		return fmt.Errorf("required flag -number not provided")
	}
	if strings.TrimSpace(cmd.Location) == "" {
		return fmt.Errorf("required flag -location not provided")
	}
	return nil
}

func (cmd *AddShelfCommand) Run() error {
	controller := cmd.controller()
	shelf, err := controller.AddShelf(context.Background(), cmd.Number, cmd.Location)
	if err != nil {
		renderNotice(cmd.out, controller.State().Notice)
		return err
	}
	fmt.Fprintf(cmd.out, "Created shelf %d: number %d at %s\n", shelf.ID, shelf.Number, shelf.Location)
	return nil
}
