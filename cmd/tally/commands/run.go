package commands

import (
	"github.com/spf13/cobra"

	"tally/app"
	"tally/hal"
)

func runCmd() *cobra.Command {
	var scale int
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the scoreboard window",
		RunE: func(cmd *cobra.Command, args []string) error {
			wc := hal.WindowConfig{Title: cfg.Window.Title, Scale: cfg.Window.Scale, Host: hostConfig()}
			if cmd.Flags().Changed("scale") {
				wc.Scale = scale
			}
			var sys *app.System
			return hal.RunWindow(newApp(&sys), wc)
		},
	}
	cmd.Flags().IntVar(&scale, "scale", 0, "window pixels per framebuffer pixel")
	return cmd
}
