// Package cmd contains the subcommands of the fintrack binary.
package cmd

import (
	"io"
	"os"

	"github.com/fintrack/backend/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Commands are all subcommands of the binary.
var Commands = []subcommands.Command{
	&serveCmd{},
	&tokenCmd{},
}

// setupLogging configures the global logger.
//
// The format can be explicitly set. If it is not set, it defaults to
// human readable for development and JSON for release.
func setupLogging(cfg config.Config) {
	output := io.Writer(os.Stdout)
	if (cfg.Log.Format == "" && gin.IsDebugging()) || cfg.Log.Format == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()
}
