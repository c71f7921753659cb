package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alex65536/fenview/internal/lichess"
	"github.com/alex65536/fenview/internal/util/signal"
	"github.com/alex65536/fenview/internal/util/style"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch username",
	Args:  cobra.ExactArgs(1),
	Short: "Download games of a Lichess user in PGN",
	Long: `Download games of a Lichess user in PGN.

If the output file already exists, nothing is downloaded unless --force is given.
`,
}

func init() {
	p := fetchCmd.Flags()
	maxGames := p.IntP(
		"max", "n", 10,
		"maximum number of games to fetch")
	output := p.StringP(
		"output", "o", "games.pgn",
		"file where to write the games")
	force := p.BoolP(
		"force", "f", false,
		"overwrite the output file if it exists")
	endpoint := p.String(
		"endpoint", lichess.DefaultEndpoint,
		"Lichess API endpoint")

	fetchCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if *maxGames <= 0 {
			return fmt.Errorf("non-positive max")
		}
		if !*force {
			if _, err := os.Stat(*output); err == nil {
				fmt.Fprintf(stdout, "%v already exists, not fetching the games\n", style.WithS(*output, 1))
				return nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("stat output: %w", err)
			}
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		client, err := lichess.NewClient(newLogger(), lichess.ClientOptions{Endpoint: *endpoint}, nil)
		if err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		games, err := client.Games(ctx, args[0], *maxGames)
		if err != nil {
			return fmt.Errorf("fetch games: %w", err)
		}

		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		if err := lichess.WriteGames(f, games); err != nil {
			return fmt.Errorf("write games: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close output: %w", err)
		}
		fmt.Fprintf(stdout, "fetched %v games into %v\n", len(games), style.WithS(*output, 1))
		return nil
	}
}
