package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/vango-dev/linkroute/internal/errors"
	"github.com/vango-dev/linkroute/pkg/applink"
	"github.com/vango-dev/linkroute/pkg/router"
)

func openCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "open <url>",
		Short: "Dispatch a URL to its handler",
		Long: `Decode a URL, including App Link data, dispatch it through the
configured filters, and print the handler's response.

Examples:
  linkroute open app://users/42 -r 'app://users/:id=ok'
  linkroute open 'app://promo?al_applink_data=...'`,
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
			req = req.WithContext(cmd.Context())

			resp, ok := a.router.Handle(req)
			if !ok {
				return errors.New("X001").WithDetail(fmt.Sprintf("scheme %q path %q", req.Scheme, req.Path))
			}

			out := cmd.OutOrStdout()
			if resp.Status == router.StatusOK {
				success(out, "%s handled", resp.URL)
			} else {
				warn(out, "%s responded %s", resp.URL, resp.Status)
			}
			info(out, "request: %s", req.ID)

			keys := make([]string, 0, len(resp.Params))
			for k := range resp.Params {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				info(out, "%s = %v", k, resp.Params[k])
			}
			return nil
		},
	}
}
