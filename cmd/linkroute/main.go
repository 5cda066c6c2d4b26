package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vango-dev/linkroute/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "linkroute",
		Short: "Resolve and dispatch deep links",
		Long: `linkroute routes navigation URLs such as app://users/42 to handlers.

Routes come from a manifest (a local file or an S3 object) named in
linkroute.json, or from --route flags:

  linkroute resolve app://users/42 --route 'app://users/:id=ok'
  linkroute serve --config /etc/linkroute/linkroute.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to linkroute.json (default: nearest in working directory)")
	flags.StringVarP(&opts.manifest, "manifest", "m", "", "Route manifest location, overrides the config")
	flags.StringArrayVarP(&opts.routes, "route", "r", nil, "Extra route as ROUTE=HANDLER (repeatable)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(
		resolveCmd(opts),
		openCmd(opts),
		routesCmd(opts),
		serveCmd(opts),
		initCmd(opts),
		versionCmd(),
	)
	return cmd
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
