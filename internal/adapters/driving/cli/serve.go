package cli

import (
	"net"
	"strconv"

	"github.com/spf13/cobra"

	httpapi "github.com/custodia-labs/profanity/internal/adapters/driving/http"
	"github.com/custodia-labs/profanity/internal/logger"
)

var (
	serveHost  string
	servePort  int
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP detection API",
	Long: `Start the HTTP API.

  POST /        {"message": "..."} -> {"isProfanity", "score", "flaggedFor"}
  GET  /health  liveness probe

Host and port default to the [server] section of config.toml. With --watch,
edits to config.toml are applied to new requests without a restart.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from settings)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from settings)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload settings when config.toml changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	detection, err := requireDetection()
	if err != nil {
		return err
	}

	host, port := "localhost", 8787
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			host, port = settings.Server.Host, settings.Server.Port
		}
	}
	if cmd.Flags().Changed("host") {
		host = serveHost
	}
	if cmd.Flags().Changed("port") {
		port = servePort
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	server, err := httpapi.NewServer(detection, addr)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if serveWatch {
		startWatch(cmd)
	}

	cmd.Printf("Listening on http://%s\n", addr)
	return server.Start(ctx)
}

// startWatch reloads settings whenever the config file changes.
func startWatch(cmd *cobra.Command) {
	if current == nil || current.Watch == nil || current.Reload == nil {
		logger.Warn("--watch ignored: config reload not available")
		return
	}

	reload := current.Reload
	watch := current.Watch
	go func() {
		err := watch(cmd.Context(), func() {
			if err := reload(); err != nil {
				logger.Warn("reloading settings: %v", err)
				return
			}
			logger.Info("Settings reloaded")
		})
		if err != nil {
			logger.Warn("watching config: %v", err)
		}
	}()
}
