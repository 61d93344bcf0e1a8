package commands

import (
	"github.com/spf13/cobra"

	"tally/app"
	"tally/hal"
	"tally/internal/config"
)

var (
	configPath string
	cfg        config.Config
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tally",
		Short:        "Score counter and stopwatch",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadOptional(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./"+config.DefaultPath+")")

	root.AddCommand(runCmd(), headlessCmd(), versionCmd())
	return root
}

// appConfig maps the loaded file onto the app settings.
func appConfig() app.Config {
	return app.Config{Interval: cfg.Stopwatch.Interval, Verbose: cfg.Log.Verbose}
}

func hostConfig() hal.HostConfig {
	return hal.HostConfig{Width: cfg.Window.Width, Height: cfg.Window.Height}
}

// newApp adapts app.New to the HAL runners. sys is set once the runner has
// built its HAL; a construction error surfaces from the first step.
func newApp(sys **app.System) func(hal.HAL) func() error {
	return func(h hal.HAL) func() error {
		s, err := app.New(h, appConfig())
		if err != nil {
			return func() error { return err }
		}
		*sys = s
		return s.Step
	}
}
