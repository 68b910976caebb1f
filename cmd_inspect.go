package main

import (
	"fmt"
	"io"
	"time"

	"everywhere_bot/internal/logger"
	"everywhere_bot/internal/storage"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

func newProfileCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Print the stored user profile as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := opts.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			profile, err := storage.NewProfileRepository(store, opts.keyspace(), time.Now).Load(ctx)
			if err != nil {
				return fmt.Errorf("failed to load profile: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), profile)
		},
	}
}

func newMemoriesCmd(opts *cliOptions) *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "memories",
		Short: "Print memory statistics and the most recent entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := opts.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			memory, err := storage.OpenLongtermMemory(ctx, store, opts.keyspace(), time.Now)
			if err != nil {
				return fmt.Errorf("failed to load memories: %w", err)
			}

			stats := memory.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total entries: %d\n", stats.TotalEntries)
			if stats.TotalEntries == 0 {
				return nil
			}
			fmt.Fprintf(out, "Oldest: %s\n", stats.OldestEntry.Format(time.RFC3339))
			fmt.Fprintf(out, "Newest: %s\n", stats.NewestEntry.Format(time.RFC3339))
			fmt.Fprintf(out, "Top topics: %v\n", stats.TopTopics)
			fmt.Fprintln(out)

			for _, entry := range memory.Recent(recent) {
				topic := string(entry.Topic)
				if topic == "" {
					topic = "-"
				}
				fmt.Fprintf(out, "[%s] %-13s %-9s %s\n",
					entry.Timestamp.Format("2006-01-02 15:04"), topic, entry.Sentiment, entry.Content)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&recent, "recent", "n", 10, "Number of recent entries to show")
	return cmd
}

func newHistoryCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print the stored conversation transcript",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := opts.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			repo := storage.NewTranscriptRepository(store, opts.keyspace(), opts.cfg.Conversation.TranscriptTurns)
			history, err := repo.Load(ctx)
			if err != nil {
				return fmt.Errorf("failed to load transcript: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, msg := range history.Messages {
				fmt.Fprintf(out, "%s: %s\n", msg.Role, msg.Content)
			}
			return nil
		},
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func closeStore(store storage.Store) {
	if err := store.Close(); err != nil {
		logger.Warn().Err(err).Msg("Failed to close storage")
	}
}
