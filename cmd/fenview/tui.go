package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/alex65536/fenview/internal/posbrowser"
	"github.com/alex65536/fenview/internal/tui"
	"github.com/alex65536/fenview/internal/util/slogx"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [data]",
	Args:  cobra.MaximumNArgs(1),
	Short: "Browse positions in the terminal",
}

func init() {
	p := tuiCmd.Flags()
	darkSquare := p.String(
		"dark-square", "",
		"colour of the dark squares, like \"#b58863\"")
	logFile := p.String(
		"log-file", "",
		"file where to write logs (no logs by default)")
	fetchTimeout := p.Duration(
		"fetch-timeout", 0,
		"timeout to fetch the data over http(s) (no timeout by default)")

	tuiCmd.RunE = func(cmd *cobra.Command, args []string) error {
		data := "fen.txt"
		if len(args) != 0 {
			data = args[0]
		}

		var logOut io.Writer
		if *logFile != "" {
			f, err := os.OpenFile(*logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer f.Close()
			logOut = f
		}
		// Logs on stderr would break the screen.
		log := slogx.New(logOut, aVerbose)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		src := posbrowser.NewSource(data, &http.Client{Timeout: *fetchTimeout})
		m, err := tui.New(ctx, log, src, tui.Options{DarkSquare: *darkSquare})
		if err != nil {
			return err
		}
		return tui.Run(ctx, m)
	}
}
