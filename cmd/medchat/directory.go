package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	appconfig "github.com/carebridge/medchat/internal/config"
	"github.com/carebridge/medchat/internal/directory"
)

var directoryCmd = &cobra.Command{
	Use:   "directory",
	Short: "List specialties, doctors and time slots",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := loadDirectory(cmd, appconfig.Load())
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		return printDirectory(cmd.OutOrStdout(), dir, asJSON)
	},
}

func init() {
	directoryCmd.Flags().Bool("json", false, "Print the directory as JSON (doctor emails omitted)")
	rootCmd.AddCommand(directoryCmd)
}

func printDirectory(w io.Writer, dir *directory.Directory, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dir)
	}
	for _, s := range dir.Specialties {
		fmt.Fprintln(w, s.Name)
		for _, d := range s.Doctors {
			fmt.Fprintf(w, "  - %s\n", d.Name)
		}
	}
	fmt.Fprintln(w, "Time slots:")
	for _, slot := range dir.TimeSlots {
		fmt.Fprintf(w, "  - %s\n", slot)
	}
	return nil
}
