package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"floatpos/pkg/config"
	"floatpos/pkg/observability"
)

type ctxKey int

const runtimeKey ctxKey = iota

// runtime is what PersistentPreRunE hands to subcommands through the
// command context.
type runtime struct {
	cfg *config.Config
	log *zap.Logger
}

func runtimeFrom(cmd *cobra.Command) (*runtime, error) {
	rt, ok := cmd.Context().Value(runtimeKey).(*runtime)
	if !ok || rt == nil {
		return nil, errors.New("configuration not initialized")
	}
	return rt, nil
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "floatpos",
		Short:         "Compute, render and script popup placements over scene files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			config.SetDefaults(v)
			if err := initializeConfig(cmd, v, cfgFile); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}
			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				return fmt.Errorf("failed to load or validate config: %w", err)
			}

			log := observability.NewLoggerTo(cfg.Logger, cmd.ErrOrStderr())
			log.Debug("configuration loaded", zap.String("config_file", v.ConfigFileUsed()))

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, runtimeKey, &runtime{cfg: cfg, log: log}))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./floatpos.yaml)")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "", "log format (console or json)")

	root.AddCommand(newComputeCmd(), newRenderCmd(), newScriptCmd())
	return root
}

// initializeConfig reads the config file and FLOATPOS_ environment
// variables into v, then binds the persistent flags over them.
func initializeConfig(cmd *cobra.Command, v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("floatpos")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("FLOATPOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	flags := cmd.Flags()
	for key, name := range map[string]string{
		"logger.level":  "log-level",
		"logger.format": "log-format",
	} {
		if f := flags.Lookup(name); f != nil && f.Changed {
			v.Set(key, f.Value.String())
		}
	}
	return nil
}
