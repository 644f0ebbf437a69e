package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Validate the question file and list its chapters",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := loadBank(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("File:      %s\n", b.Path())
		fmt.Printf("Questions: %d\n\n", b.Len())

		fmt.Printf("%-10s  %s\n", "Chapter", "Questions")
		fmt.Println(strings.Repeat("─", 24))
		for _, c := range b.Chapters() {
			fmt.Printf("%-10s  %9d\n", c.Chapter, c.Count)
		}
		return nil
	},
}
