package cmd

import (
	"image/png"
	"os"

	"github.com/charmbracelet/log"
	"github.com/matjam/ledsign/internal/cli/cmd/utils"
	"github.com/matjam/ledsign/internal/dataformat"
	"github.com/matjam/ledsign/internal/engine"
	"github.com/matjam/ledsign/internal/icons"
	"github.com/matjam/ledsign/internal/ipc"
	"github.com/matjam/ledsign/internal/template"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [template.json]",
		Short: "Render a template to a PNG file",
		Long: `With a template argument, renders one frame of that template locally.
With no argument, fetches the running daemon's current frame.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			out, _ := cmd.Flags().GetString("out")

			if len(args) == 0 {
				data, err := ipc.FetchPreview()
				if err != nil {
					log.Fatalf("Failed to fetch preview: %v", err)
				}
				if err := os.WriteFile(out, data, 0644); err != nil {
					log.Fatalf("Failed to write %s: %v", out, err)
				}
				log.Infof("Wrote %s", out)
				return
			}

			t, err := template.Load(utils.CanonicalPath(args[0]))
			if err != nil {
				log.Fatalf("Failed to load template: %v", err)
			}

			session := engine.NewSession(engine.Options{
				Resolver: dataformat.New(nil),
				Icons:    icons.NewLibrary(utils.CanonicalPath(viper.GetString("icons"))),
			})
			defer session.Cleanup()

			img := session.RenderImage(t, nil)

			f, err := os.Create(out)
			if err != nil {
				log.Fatalf("Failed to create %s: %v", out, err)
			}
			defer f.Close()

			if err := png.Encode(f, img); err != nil {
				log.Fatalf("Failed to encode PNG: %v", err)
			}
			log.Infof("Wrote %s", out)
		},
	}

	cmd.Flags().StringP("out", "o", "preview.png", "Output PNG path")
	return cmd
}
