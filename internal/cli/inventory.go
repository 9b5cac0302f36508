package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/bookstore/internal/client"
	"github.com/mrlokans/bookstore/internal/config"
)

// InventoryCommand prints the books, genres and shelves served by the API
type InventoryCommand struct {
	APIURL   string
	Timeout  time.Duration
	Criteria client.Criteria

	out io.Writer
}

func NewInventoryCommand(cfg *config.Config) *InventoryCommand {
	return &InventoryCommand{
		APIURL:  cfg.Client.APIURL,
		Timeout: cfg.Client.Timeout,
		out:     os.Stdout,
	}
}

func (cmd *InventoryCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("inventory", flag.ContinueOnError)

	fs.StringVar(&cmd.APIURL, "api", cmd.APIURL, "Base URL of the inventory API")
	fs.DurationVar(&cmd.Timeout, "timeout", cmd.Timeout, "Per-request timeout")
	fs.StringVar(&cmd.Criteria.Title, "title", "", "Only books whose title contains this text")
	fs.StringVar(&cmd.Criteria.Author, "author", "", "Only books whose author contains this text")
	fs.StringVar(&cmd.Criteria.Genre, "genre", "", "Only books whose genre name contains this text")
	fs.StringVar(&cmd.Criteria.Publisher, "publisher", "", "Only books whose publisher contains this text")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s inventory [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List the inventory through the API. Search flags are combined with AND.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s inventory -genre Sci -author Herbert\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *InventoryCommand) Run() error {
	ctx := context.Background()
	controller := client.NewController(client.NewAPI(cmd.APIURL, cmd.Timeout))

	if err := controller.Start(ctx); err != nil {
		renderNotice(cmd.out, controller.State().Notice)
		return err
	}

	if !cmd.Criteria.IsEmpty() {
		if err := controller.Search(ctx, cmd.Criteria); err != nil {
			renderNotice(cmd.out, controller.State().Notice)
			return err
		}
	}

	state := controller.State()
	fmt.Fprintf(cmd.out, "Books (%d)\n", len(state.Books))
	if err := renderBooks(cmd.out, state.Books); err != nil {
		return err
	}
	fmt.Fprintf(cmd.out, "\nGenres (%d)\n", len(state.Genres))
	if err := renderGenres(cmd.out, state.Genres); err != nil {
		return err
	}
	fmt.Fprintf(cmd.out, "\nShelves (%d)\n", len(state.Shelves))
	return renderShelves(cmd.out, state.Shelves)
}
