package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Ask the study copilot one question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		// No simulated thinking delay outside the TUI.
		copilot := newCopilot(cmd.Context(), st.EventRepo(), -1)
		reply, err := copilot.Send(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		fmt.Println(reply.Content)
		if len(reply.Sources) > 0 {
			fmt.Println()
			fmt.Println("Sources:")
			for _, s := range reply.Sources {
				line := "  " + s.Title
				if s.Page > 0 {
					line += fmt.Sprintf(" (p.%d)", s.Page)
				}
				fmt.Printf("%s  %d%% match\n", line, int(s.Relevance*100+0.5))
			}
		}
		return nil
	},
}
