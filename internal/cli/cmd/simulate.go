package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/matjam/ledsign/internal/cli/cmd/utils"
	"github.com/matjam/ledsign/internal/ipc"
	"github.com/matjam/ledsign/internal/sim"
	"github.com/spf13/cobra"
)

func NewSimulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate [template1.json] [template2.json] ...",
		Short: "Render templates in the terminal",
		Long: `Runs the render loop with a terminal simulator instead of matrix
hardware. Press q, ESC or Ctrl-C to quit.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			paths := make([]string, len(args))
			for i, arg := range args {
				paths[i] = utils.CanonicalPath(arg)
			}

			simulator, err := sim.New()
			if err != nil {
				log.Fatalf("Failed to start simulator: %v", err)
			}

			manager := ipc.NewManager(paths, simulator)
			go func() {
				<-simulator.Done()
				manager.Stop()
			}()

			manager.Run()
		},
	}
}
