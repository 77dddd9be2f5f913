package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mocksmith/mocksmith/internal/config"
	"github.com/mocksmith/mocksmith/internal/mockfile"
	"github.com/spf13/cobra"
)

var (
	serveFile   string
	servePort   int
	serveName   string
	servePrefix string
	serveToken  string
)

// serveCmd starts a mock server from a definition file.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a mock server from a YAML definition",
	Long: `Start an HTTP mock server from a YAML definition file.

Every route in the definition answers 200 with its canned or generated JSON
value. Flags override the definition; the definition overrides the config
file.

Example:
  mocksmith serve -f mocks.yaml
  mocksmith serve -f mocks.yaml --port 4005 --token sekret`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveFile, "file", "f", "mocks.yaml", "mock definition file")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides definition)")
	serveCmd.Flags().StringVar(&serveName, "name", "", "server name (overrides definition)")
	serveCmd.Flags().StringVar(&servePrefix, "prefix", "", "route prefix (overrides definition)")
	serveCmd.Flags().StringVar(&serveToken, "token", "", "shared-secret auth token (adds a gate)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		exitError("failed to load config: %v", err)
	}

	def, err := mockfile.ParseFile(serveFile)
	if err != nil {
		exitError("failed to load mock definition: %v", err)
	}
	applyOverrides(def, cfg)

	server, err := mockfile.Build(def)
	if err != nil {
		exitError("failed to build server: %v", err)
	}

	port := def.Port
	if servePort > 0 {
		port = servePort
	}
	if port == 0 {
		port = cfg.Server.Port
	}

	// Handle graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-stop
		fmt.Println("\nShutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
		}
	}()

	if err := server.Start(port); err != nil && err != http.ErrServerClosed {
		exitError("server error: %v", err)
	}
}

// applyOverrides layers flag and config values onto the parsed definition:
// flags win over the definition, the definition wins over the config file.
func applyOverrides(def *mockfile.Definition, cfg *config.Config) {
	if def.Name == "" {
		def.Name = cfg.Server.Name
	}
	if serveName != "" {
		def.Name = serveName
	}

	if def.Prefix == "" {
		def.Prefix = cfg.Server.Prefix
	}
	if servePrefix != "" {
		def.Prefix = servePrefix
	}

	if def.Delay == "" {
		def.Delay = cfg.Server.Delay
	}

	token := cfg.Auth.Token
	if serveToken != "" {
		token = serveToken
	}
	if def.Auth == nil && token != "" {
		def.Auth = &mockfile.AuthDef{Token: token, Header: cfg.Auth.Header}
	}
}
