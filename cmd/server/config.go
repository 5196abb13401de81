package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind       string
	port       int
	dbPath     string
	webDir     string
	adminToken string
	verbose    bool
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.dbPath == "" {
		return errors.New("--db must not be empty")
	}
	return nil
}

func (c *Config) addr() string {
	return fmt.Sprintf("%s:%d", c.bind, c.port)
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("MATHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "math-board-game",
		Short:         "A browser-based multiplayer math board game with a persistent scoreboard.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return serve(cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: MATHBOARD_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: MATHBOARD_PORT)")
	fs.StringVar(&cfg.dbPath, "db", "data/scoreboard.sqlite", "path to the scoreboard database (env: MATHBOARD_DB)")
	fs.StringVar(&cfg.webDir, "web-dir", "./web", "directory holding templates/ and static/ (env: MATHBOARD_WEB_DIR)")
	fs.StringVar(&cfg.adminToken, "admin-token", "", "token guarding the admin endpoints; empty disables them (env: MATHBOARD_ADMIN_TOKEN)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "log every request (env: MATHBOARD_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	return cmd
}
