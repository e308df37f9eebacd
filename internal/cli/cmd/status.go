package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/matjam/ledsign/internal/cli/cmd/utils"
	"github.com/matjam/ledsign/internal/ipc"
	"github.com/spf13/cobra"
)

func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get ledsign status",
		Long:  `Returns the current status of the ledsign process.`,
		Run: func(cmd *cobra.Command, args []string) {
			status, err := ipc.SendStatus()
			if err != nil {
				log.Errorf("Error sending command: %v", err)
				return
			}

			utils.PrintJSONColored(status)
		},
	}
}
