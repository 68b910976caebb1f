package main

import (
	"context"
	"fmt"

	"everywhere_bot/internal/config"
	"everywhere_bot/internal/logger"
	"everywhere_bot/internal/storage"

	"github.com/spf13/cobra"
)

type cliOptions struct {
	configPath string
	userID     string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "everywhere",
		Short: "Everywhere - a rule-based conversational companion",
		Long: `Everywhere is a rule-based chat companion that learns your name, interests
and preferences, remembers significant moments and answers simple factual questions.

Run without arguments to start chatting.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			if err := logger.InitLogger(cfg.Log); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "config.yaml", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&opts.userID, "user", "u", "default", "User whose profile and memories are used")

	rootCmd.AddCommand(
		newChatCmd(opts),
		newProfileCmd(opts),
		newMemoriesCmd(opts),
		newHistoryCmd(opts),
	)
	return rootCmd
}

func (o *cliOptions) keyspace() storage.Keyspace {
	return storage.Keyspace{Prefix: o.cfg.Storage.KeyPrefix, UserID: o.userID}
}

// openStore opens the configured backend; the caller closes it
func (o *cliOptions) openStore(ctx context.Context) (storage.Store, error) {
	store, err := storage.Open(ctx, o.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", o.cfg.Storage.Backend, err)
	}
	return store, nil
}
