package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/bookstore/internal/cli"
	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "migrate":
		cmd = cli.NewMigrateCommand(config.NewConfig())
	case "inventory":
		cmd = cli.NewInventoryCommand(config.NewConfig())
	case "add-book":
		cmd = cli.NewAddBookCommand(config.NewConfig())
	case "add-genre":
		cmd = cli.NewAddGenreCommand(config.NewConfig())
	case "add-shelf":
		cmd = cli.NewAddShelfCommand(config.NewConfig())
	case "version":
		fmt.Printf("bookstore %s (%s)\n", Version, Commit)
		return
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve       Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  migrate     Apply pending schema migrations (-status to list them)\n")
	fmt.Fprintf(os.Stderr, "  inventory   List books, genres and shelves through the API\n")
	fmt.Fprintf(os.Stderr, "  add-book    Create a book through the API\n")
	fmt.Fprintf(os.Stderr, "  add-genre   Create a genre through the API\n")
	fmt.Fprintf(os.Stderr, "  add-shelf   Create a shelf through the API\n")
	fmt.Fprintf(os.Stderr, "  version     Print the version\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
