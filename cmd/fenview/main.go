package main

import (
	"log/slog"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"

	"github.com/alex65536/fenview/internal/util/slogx"
	"github.com/alex65536/fenview/internal/util/style"
	"github.com/alex65536/fenview/internal/version"
)

var (
	stdout = colorable.NewColorableStdout()
	stderr = colorable.NewColorableStderr()
)

var aVerbose bool

var rootCmd = &cobra.Command{
	Version: version.Version,
	Use:     "fenview",
	Short:   "Browses chess positions with engine evaluations",
	Long: `fenview shows chess positions from a dataset, one at a time.

The dataset has one JSON object per line, like {"FEN": "...", "score": "+0.35"}.
It can be served as a web page (serve), shown in the terminal (tui), or built
from your own games (fetch, then extract).
`,
	SilenceUsage: true,
}

func newLogger() *slog.Logger {
	return slogx.New(stderr, aVerbose)
}

func main() {
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetErrPrefix(style.WithSE("error:", 31, 1))
	rootCmd.PersistentFlags().BoolVarP(
		&aVerbose, "verbose", "v", false,
		"enable debug logs")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(analyzeCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
