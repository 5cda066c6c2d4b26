package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/vango-dev/linkroute/internal/errors"
	"github.com/vango-dev/linkroute/pkg/applink"
)

func resolveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <url>",
		Short: "Show which route a URL matches",
		Long: `Look up a URL without dispatching it and print the extracted
parameters.

Examples:
  linkroute resolve app://users/42
  linkroute resolve /settings/privacy -r /settings/:section`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			req, err := applink.Parse(args[0])
			if err != nil {
				return errors.New("U001").WithDetail(args[0]).Wrap(err)
			}

			m, ok := a.router.Resolve(req.Scheme, req.Path)
			if !ok {
				return errors.New("X001").WithDetail(fmt.Sprintf("scheme %q path %q", req.Scheme, req.Path))
			}

			out := cmd.OutOrStdout()
			success(out, "matched %s", args[0])
			info(out, "scheme: %s", displayScheme(req.Scheme))
			info(out, "path:   %s", req.Path)
			if m.Handler == nil {
				warn(out, "node has no handler")
			}
			printParams(cmd, m.Params)
			return nil
		},
	}
}

func printParams(cmd *cobra.Command, params map[string]string) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		info(cmd.OutOrStdout(), "%s = %s", k, params[k])
	}
}

func displayScheme(scheme string) string {
	if scheme == "" {
		return "(default)"
	}
	return scheme
}
