package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/carloom/internal/dataset"
	"github.com/KaramelBytes/carloom/internal/stats"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <file>",
	Short: "Print a dataset summary without starting the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := dataset.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Print(stats.Summarize(t).Markdown())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
