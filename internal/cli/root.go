package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"notelist-cli/internal/config"
	"notelist-cli/internal/store"
	"notelist-cli/internal/sync"
	"notelist-cli/internal/tui"
)

type App struct {
	ConfigFile string
	Server     string
	StateDir   string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "notelist",
		Short:        "Outliner notes client (TUI + scriptable commands)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive outliner
  notelist

  # Scriptable commands
  notelist list --pretty
  notelist export > notes.txt
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigFile, "config", envOr("NOTELIST_CONFIG", ""), "Path to config file (default: ./config.yaml, ~/.config/notelist/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.Server, "server", "", "Server base URL (overrides config and NOTELIST_SERVER)")
	cmd.PersistentFlags().StringVar(&app.StateDir, "state-dir", envOr("NOTELIST_STATE_DIR", ""), "Directory for local view state (advanced; mainly for fixtures/tests)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runTUI(app *App) error {
	cfg, client, err := loadRemote(app)
	if err != nil {
		return err
	}
	defer client.Close()

	st, err := loadStore(app)
	if err != nil {
		return err
	}
	return tui.Run(cfg, client, st)
}

// loadRemote builds the configured server client. The --server flag wins over
// config file and environment.
func loadRemote(app *App) (*config.Config, *sync.Client, error) {
	cfg, err := config.Load(app.ConfigFile)
	if err != nil {
		return nil, nil, err
	}
	if app.Server != "" {
		cfg.Server.URL = app.Server
	}
	client := sync.NewClient(cfg.Server.URL, cfg.Server.Timeout(), slog.Default())
	return cfg, client, nil
}

func loadStore(app *App) (store.Store, error) {
	dir := app.StateDir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
	}
	return store.Store{Dir: dir}, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
