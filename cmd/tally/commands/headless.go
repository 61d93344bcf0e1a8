package commands

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tally/app"
	"tally/hal"
	"tally/tasks/scoreboard"
)

const headlessExample = `  tally headless --virtual --ticks 600 --press 0:start --press 300:stop
  tally headless --virtual --ticks 10 --press 1:increment --screenshot out.png`

func headlessCmd() *cobra.Command {
	var (
		hz         int
		ticks      uint64
		virtual    bool
		presses    []string
		screenshot string
		interval   time.Duration
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:     "headless",
		Short:   "Run the scoreboard without a window",
		Example: headlessExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := parsePresses(presses)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("interval") {
				cfg.Stopwatch.Interval = interval
			}
			if cmd.Flags().Changed("verbose") {
				cfg.Log.Verbose = verbose
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			host := hostConfig()
			host.LogOutput = cmd.ErrOrStderr()

			var sys *app.System
			var shotErr error
			hc := hal.HeadlessConfig{
				Hz:      hz,
				Ticks:   ticks,
				Virtual: virtual,
				Host:    host,
				Script:  script,
				Done: func(h hal.HAL) {
					if screenshot != "" {
						shotErr = writeScreenshot(screenshot, h)
					}
				},
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			err = hal.RunHeadless(ctx, newApp(&sys), hc)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			if shotErr != nil {
				return shotErr
			}
			if sys != nil {
				b := sys.Board()
				fmt.Fprintf(cmd.OutOrStdout(), "score=%d elapsed=%d running=%t\n", b.Score(), b.Elapsed(), b.Running())
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&hz, "hz", 60, "frames per second")
	f.Uint64Var(&ticks, "ticks", 0, "stop after N frames (0 = run until interrupted)")
	f.BoolVar(&virtual, "virtual", false, "advance the clock one frame per step without sleeping (needs --ticks)")
	f.StringArrayVar(&presses, "press", nil, "press a button at a frame, as FRAME:ACTION ("+strings.Join(actionNames(), "|")+")")
	f.StringVar(&screenshot, "screenshot", "", "write the final framebuffer to this PNG file")
	f.DurationVar(&interval, "interval", 0, "stopwatch tick interval (overrides the config file)")
	f.BoolVar(&verbose, "verbose", false, "log every stopwatch tick")
	return cmd
}

func actionNames() []string {
	return []string{scoreboard.ActionIncrement, scoreboard.ActionStart, scoreboard.ActionStop, scoreboard.ActionReset}
}

// parsePresses turns FRAME:ACTION args into keyboard shortcut events.
func parsePresses(args []string) ([]hal.ScriptEvent, error) {
	var out []hal.ScriptEvent
	for _, arg := range args {
		frame, action, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("press %q: want FRAME:ACTION", arg)
		}
		at, err := strconv.ParseUint(strings.TrimSpace(frame), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("press %q: bad frame: %w", arg, err)
		}
		r, ok := scoreboard.Shortcuts[strings.TrimSpace(action)]
		if !ok {
			return nil, fmt.Errorf("press %q: unknown action %q", arg, action)
		}
		out = append(out, hal.ScriptEvent{At: at, Key: &hal.KeyEvent{Press: true, Rune: r}})
	}
	return out, nil
}

func writeScreenshot(path string, h hal.HAL) error {
	disp := h.Display()
	if disp == nil || disp.Framebuffer() == nil {
		return errors.New("screenshot: no framebuffer")
	}
	img := hal.Snapshot(disp.Framebuffer())
	if img == nil {
		return errors.New("screenshot: unsupported pixel format")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("screenshot: %w", err)
	}
	return f.Close()
}
