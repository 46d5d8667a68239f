package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var uploadsLimit int

var uploadsCmd = &cobra.Command{
	Use:   "uploads",
	Short: "Show import history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		uploads, err := st.ListUploads(ctx, uploadsLimit)
		if err != nil {
			return err
		}
		if len(uploads) == 0 {
			fmt.Println("No imports recorded.")
			return nil
		}

		fmt.Printf("%-20s %-10s %8s  %s\n", "When", "Type", "Records", "File")
		for _, u := range uploads {
			fmt.Printf("%-20s %-10s %8d  %s\n",
				u.CreatedAt.Format("2006-01-02 15:04:05"), u.DataType, u.Records, u.Filename)
		}
		return nil
	},
}

func init() {
	uploadsCmd.Flags().IntVar(&uploadsLimit, "limit", 20, "maximum entries to show")
	rootCmd.AddCommand(uploadsCmd)
}
