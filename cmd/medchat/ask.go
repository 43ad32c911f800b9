package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/cobra"

	"github.com/carebridge/medchat/cmd/mainconfig"
	"github.com/carebridge/medchat/internal/app/bootstrap"
	appconfig "github.com/carebridge/medchat/internal/config"
	"github.com/carebridge/medchat/internal/medqa"
	"github.com/carebridge/medchat/pkg/logging"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Send one medical question to the configured language model",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appconfig.Load()
		logger := logging.NewWithWriter("warn", cmd.ErrOrStderr())
		ctx := cmd.Context()

		var awsCfg *aws.Config
		if mainconfig.NeedsAWS(cfg) {
			loaded, err := mainconfig.LoadAWSConfig(ctx, cfg)
			if err != nil {
				return fmt.Errorf("load aws config: %w", err)
			}
			awsCfg = &loaded
		}

		llm := bootstrap.BuildLLMClient(ctx, cfg, awsCfg, logger)
		defer llm.Close()
		if llm.Client == nil {
			return fmt.Errorf("no language model configured (set GROQ_API_KEY, BEDROCK_MODEL_ID or GEMINI_API_KEY)")
		}

		svc := medqa.NewService(llm.Client, medqa.ServiceConfig{
			Provider:  llm.Provider,
			Model:     llm.Model,
			MaxTokens: int32(cfg.LLMMaxTokens),
			Timeout:   cfg.LLMTimeout,
		}, nil, logger)

		start := time.Now()
		answer := svc.Answer(ctx, strings.Join(args, " "))
		fmt.Fprintf(cmd.OutOrStdout(), "[%s %s, %v]\n%s\n", llm.Provider, llm.Model, time.Since(start).Round(time.Millisecond), answer)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
