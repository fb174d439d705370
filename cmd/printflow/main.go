package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yukikurage/printflow/internal/app"
	"github.com/yukikurage/printflow/internal/config"
	"github.com/yukikurage/printflow/internal/logging"
)

// cli carries the settings shared by every command. Flags win over PRINTFLOW_*
// variables, which win over the server's own environment variables.
type cli struct {
	v    *viper.Viper
	base *config.Config
}

func main() {
	if err := newRootCmd(config.Load()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(base *config.Config) *cobra.Command {
	c := &cli{v: viper.New(), base: base}

	root := &cobra.Command{
		Use:   "printflow",
		Short: "Print shop order board",
		Long: `printflow tracks print-shop orders through prepress, printing and postpress.
Orders live in a shared database when DB_DRIVER is set and reachable, otherwise in a local store.`,
		SilenceUsage: true,
	}
	c.initConfig()
	c.addPersistentFlags(root)

	root.AddCommand(c.boardCmd())
	root.AddCommand(c.ordersCmd())
	root.AddCommand(c.workOrderCmd())
	root.AddCommand(c.deadlinesCmd())
	root.AddCommand(c.chatCmd())
	root.AddCommand(c.profileCmd())
	return root
}

func (c *cli) initConfig() {
	c.v.SetEnvPrefix("PRINTFLOW")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
}

func (c *cli) addPersistentFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.Bool("json", false, "output JSON")
	flags.String("local-store", c.base.LocalStore, "local store kind (file or sqlite)")
	flags.String("local-path", c.base.LocalPath, "local store path")
	flags.String("db-driver", c.base.DBDriver, "remote database driver (postgres, mysql or sqlite)")
	flags.String("db-dsn", c.base.DBDSN, "remote database DSN")
	flags.String("log-level", "warn", "log level")
	for _, name := range []string{"json", "local-store", "local-path", "db-driver", "db-dsn", "log-level"} {
		_ = c.v.BindPFlag(name, flags.Lookup(name))
	}
}

func (c *cli) config() *config.Config {
	cfg := *c.base
	cfg.LocalStore = c.v.GetString("local-store")
	cfg.LocalPath = c.v.GetString("local-path")
	cfg.DBDriver = c.v.GetString("db-driver")
	cfg.DBDSN = c.v.GetString("db-dsn")
	return &cfg
}

func (c *cli) withApp(ctx context.Context, fn func(context.Context, *app.App) error) error {
	log := logging.New(os.Stderr, logging.ParseLevel(c.v.GetString("log-level")))
	a, err := app.New(ctx, c.config(), log)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func (c *cli) jsonOutput() bool {
	return c.v.GetBool("json")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	return tw
}

// parseOrderNumber accepts 1001 as well as #1001.
func parseOrderNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid order number %q", s)
	}
	return n, nil
}
