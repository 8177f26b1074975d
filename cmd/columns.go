package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/carloom/internal/dataset"
)

var columnsCmd = &cobra.Command{
	Use:   "columns <file>",
	Short: "Show the numeric/categorical column split for a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := dataset.Load(args[0])
		if err != nil {
			return err
		}
		numeric, categorical := t.Classify()
		fmt.Printf("Rows: %d\n", t.NumRows())
		fmt.Printf("Numeric (%d): %s\n", len(numeric), strings.Join(numeric, ", "))
		fmt.Printf("Categorical (%d): %s\n", len(categorical), strings.Join(categorical, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}
