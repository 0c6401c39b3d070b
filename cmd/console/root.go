package main

import (
	"github.com/softnova/crm-console/internal/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	ephemeral  bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "console",
		Short: "SoftNova CRM operator console",
		Long: "console is the operator's client of the SoftNova CRM. `console serve` runs the\n" +
			"HTML console; the other subcommands drive the same session from a terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file path (default "+config.DefaultConfigFile()+")")
	rootCmd.PersistentFlags().BoolVar(&opts.ephemeral, "ephemeral", false, "keep the session in memory for this process only")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at the configured level instead of warnings only")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newLoginCmd(opts))
	rootCmd.AddCommand(newLogoutCmd(opts))
	rootCmd.AddCommand(newWhoamiCmd(opts))
	rootCmd.AddCommand(newLeadsCmd(opts))
	rootCmd.AddCommand(newUsersCmd(opts))

	return rootCmd
}

func (o *rootOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	if o.ephemeral {
		cfg = ephemeralConfig{Config: cfg}
	}
	return cfg, nil
}

// ephemeralConfig forces the in-memory credential store
type ephemeralConfig struct {
	config.Config
}

func (ephemeralConfig) GetSessionBackend() string {
	return config.BackendMemory
}
