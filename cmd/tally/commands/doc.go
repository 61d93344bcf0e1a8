// Package commands defines the tally CLI.
//
// Commands
//
//   - run       Open a window with the scoreboard
//   - headless  Run without a window, optionally on a virtual clock
//   - version   Print build information
//
// The root command loads tally.yaml (or --config) before any subcommand runs;
// subcommand flags override the file.
package commands
