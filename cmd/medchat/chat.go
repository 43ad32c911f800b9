package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/carebridge/medchat/internal/app/bootstrap"
	"github.com/carebridge/medchat/internal/booking"
	appconfig "github.com/carebridge/medchat/internal/config"
	"github.com/carebridge/medchat/internal/conversation"
	"github.com/carebridge/medchat/internal/dialogue"
	"github.com/carebridge/medchat/internal/medqa"
	"github.com/carebridge/medchat/internal/session"
	"github.com/carebridge/medchat/pkg/logging"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant in the terminal",
	Long: `Starts a local conversation against an in-memory session store.
Buttons are listed with numbers; type the number to press one.
Confirmation emails go through the configured provider (stub when none).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appconfig.Load()
		level, _ := cmd.Flags().GetString("log-level")
		logger := logging.NewWithWriter(level, cmd.ErrOrStderr())

		dir, err := loadDirectory(cmd, cfg)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		sender, _ := bootstrap.BuildEmailSender(cfg, nil, logger)
		bookingSvc := booking.NewService(sender, logger)
		llm := bootstrap.BuildLLMClient(ctx, cfg, nil, logger)
		defer llm.Close()
		answerer := medqa.NewService(llm.Client, medqa.ServiceConfig{
			Provider:  llm.Provider,
			Model:     llm.Model,
			MaxTokens: int32(cfg.LLMMaxTokens),
			Timeout:   cfg.LLMTimeout,
		}, nil, logger)

		engine := dialogue.NewEngine(dir, conversation.BookingAdapter{Service: bookingSvc}, answerer, logger)
		svc := conversation.NewService(engine, session.NewMemoryStore(time.Hour), nil, nil, logger)
		return runConsole(ctx, svc, uuid.NewString(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	chatCmd.Flags().String("log-level", "error", "Log level for engine diagnostics on stderr")
	rootCmd.AddCommand(chatCmd)
}

type chatter interface {
	Handle(ctx context.Context, sessionID, message string) (dialogue.Response, error)
}

// runConsole drives one session until EOF, "quit" or an end command.
func runConsole(ctx context.Context, chat chatter, sessionID string, in io.Reader, out io.Writer) error {
	resp, err := chat.Handle(ctx, sessionID, "start")
	if err != nil {
		return err
	}
	render(out, resp)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			_, err := chat.Handle(ctx, sessionID, "end")
			return err
		}
		message := resolveButton(resp, line)
		resp, err = chat.Handle(ctx, sessionID, message)
		if err != nil {
			return err
		}
		if message == "end" {
			return nil
		}
		render(out, resp)
	}
}

// resolveButton maps a 1-based button number onto the button's message.
func resolveButton(resp dialogue.Response, line string) string {
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(resp.Buttons) {
		return line
	}
	return resp.Buttons[n-1].Action.Message()
}

func render(out io.Writer, resp dialogue.Response) {
	if resp.Silent {
		return
	}
	fmt.Fprintln(out, resp.Reply)
	for i, b := range resp.Buttons {
		fmt.Fprintf(out, "  [%d] %s\n", i+1, b.Text)
	}
	if resp.IsMedicalInquiry {
		fmt.Fprintln(out, "  (medical question mode)")
	}
}
