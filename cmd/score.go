package cmd

import (
	"fmt"

	"github.com/abhisek/parley/internal/similarity"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score <target> <spoken>",
	Short: "Score a transcript against a target phrase",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		score := similarity.Score(args[0], args[1])
		fmt.Fprintf(cmd.OutOrStdout(), "%d%% %s\n", score, similarity.Tier(score))
	},
}
