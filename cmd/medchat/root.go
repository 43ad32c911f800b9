package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/carebridge/medchat/cmd/mainconfig"
	"github.com/carebridge/medchat/internal/app/bootstrap"
	appconfig "github.com/carebridge/medchat/internal/config"
	"github.com/carebridge/medchat/internal/directory"
)

var rootCmd = &cobra.Command{
	Use:   "medchat",
	Short: "MedChat is an appointment booking and medical Q&A assistant",
	Long:  `Run the MedChat dialogue in a terminal, or inspect the clinic directory it books against.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("directory", "", "YAML directory file (defaults to DIRECTORY_FILE or the built-in directory)")
}

func loadDirectory(cmd *cobra.Command, cfg *appconfig.Config) (*directory.Directory, error) {
	if path, _ := cmd.Flags().GetString("directory"); path != "" {
		cfg.DirectoryFile = path
	}
	if !bootstrap.IsS3URI(cfg.DirectoryFile) {
		return bootstrap.BuildDirectory(cfg)
	}
	awsCfg, err := mainconfig.LoadAWSConfig(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}
	return bootstrap.LoadDirectory(cmd.Context(), cfg, &awsCfg)
}
