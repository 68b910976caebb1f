package main

import (
	"bufio"
	"strings"

	"everywhere_bot/internal/logger"
	"everywhere_bot/internal/render"
	"everywhere_bot/internal/session"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exitWords = map[string]bool{"exit": true, "quit": true, "/exit": true, "/quit": true}

func newChatCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Starts a chat on stdin/stdout. New users are taken through a short onboarding
(or greeted casually when guided_onboarding is off). Type "exit" to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts)
		},
	}
}

func runChat(cmd *cobra.Command, opts *cliOptions) error {
	ctx := cmd.Context()

	store, err := opts.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	s, err := session.New(ctx, store, session.Options{
		UserID:       opts.userID,
		KeyPrefix:    opts.cfg.Storage.KeyPrefix,
		Typing:       opts.cfg.Typing,
		Conversation: opts.cfg.Conversation,
	})
	if err != nil {
		return err
	}

	console := render.NewConsole(cmd.OutOrStdout(), !color.NoColor)
	dispatcher := session.NewDispatcher(console)

	dispatcher.Dispatch(s.Start(ctx))
	dispatcher.Wait()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		console.Prompt()
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if exitWords[strings.ToLower(line)] {
			break
		}
		dispatcher.Dispatch(s.Submit(ctx, line))
		dispatcher.Wait()
	}

	logger.Info().Str("session_id", s.ID).Msg("Chat session ended")
	return scanner.Err()
}
