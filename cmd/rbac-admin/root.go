package main

import (
	"fmt"

	rbac "github.com/paulvitic/rbac-admin"
	"github.com/paulvitic/rbac-admin/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type rootOptions struct {
	configDir string
	profile   string
	flags     *viper.Viper
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{flags: viper.New()}

	cmd := &cobra.Command{
		Use:   "rbac-admin",
		Short: "Users dashboard of the RBAC admin",
		Long: `rbac-admin serves the users dashboard of the RBAC admin over HTTP,
backed by a simulated user service with artificial latency.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", ".", "directory holding the properties files")
	cmd.PersistentFlags().StringVar(&opts.profile, "profile", "", "properties profile, e.g. dev for properties.dev.json")

	cmd.AddCommand(newServeCmd(opts), newUsersCmd(opts))
	return cmd
}

// load reads the dashboard settings and applies the flags set on the
// command line over them.
func (o *rootOptions) load() (config.Dashboard, error) {
	cfg, err := config.LoadDashboard(o.configDir, o.profile)
	if err != nil {
		return cfg, err
	}
	if o.flags.IsSet("server.host") {
		cfg.Server.Host = o.flags.GetString("server.host")
	}
	if o.flags.IsSet("server.port") {
		cfg.Server.Port = o.flags.GetInt("server.port")
	}
	return cfg, nil
}

func newLogger(cfg config.Dashboard) (*rbac.Logger, error) {
	logger, err := rbac.NewLogger(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
