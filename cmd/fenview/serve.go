package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/alex65536/fenview/internal/posbrowser"
	"github.com/alex65536/fenview/internal/util/signal"
	"github.com/alex65536/fenview/internal/webui"
)

var serveCmd = &cobra.Command{
	Use:   "serve [data]",
	Args:  cobra.MaximumNArgs(1),
	Short: "Serve the position viewer over HTTP",
	Long: `Serve the position viewer over HTTP.

The data is a local file or an http(s) URL, "fen.txt" by default. It is fetched
once on startup. Lines which are not valid records are skipped.
`,
}

func init() {
	p := serveCmd.Flags()
	optsPath := p.StringP(
		"options", "o", "",
		"options file")
	secretsPath := p.StringP(
		"secrets", "s", "fenview-secrets.toml",
		"secrets file (created if missing)")
	addr := p.String(
		"host", "",
		"host to listen on (overrides the options file)")
	port := p.IntP(
		"port", "p", 0,
		"port to listen on (overrides the options file)")

	serveCmd.RunE = func(cmd *cobra.Command, args []string) error {
		opts, err := readOptions(*optsPath)
		if err != nil {
			return err
		}
		if len(args) != 0 {
			opts.Data = args[0]
		}
		if *addr != "" {
			opts.Host = *addr
		}
		if *port != 0 {
			opts.Port = *port
		}
		secrets, err := readSecrets(*secretsPath)
		if err != nil {
			return err
		}
		if err := opts.MixSecrets(&secrets); err != nil {
			return fmt.Errorf("mix secrets into options: %w", err)
		}
		opts.FillDefaults()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		log := newLogger()

		loader := posbrowser.NewLoader(log, posbrowser.NewSource(opts.Data, &http.Client{
			Timeout: opts.FetchTimeout,
		}))
		loader.Start(ctx)

		mux := http.NewServeMux()
		if err := webui.Handle(log, mux, "", webui.Config{
			Loader:  loader,
			CSRFKey: opts.csrfKey,
		}, opts.WebUI); err != nil {
			return fmt.Errorf("handle webui: %w", err)
		}

		servers, err := newServers(ctx, log, &opts, mux)
		if err != nil {
			return fmt.Errorf("create servers: %w", err)
		}
		servers.Go()
		<-servers.Done()
		servers.Shutdown()
		return nil
	}
}
