package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/matjam/ledsign/internal/ipc"
	"github.com/spf13/cobra"
)

func NewLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load [template1.json] [template2.json] ...",
		Short: "Load a new list of templates into the daemon",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := ipc.SendLoad(args); err != nil {
				log.Fatalf("Failed to send 'load' command: %v", err)
			}
			log.Infof("Loaded %d templates", len(args))
		},
	}
}
