package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vango-dev/linkroute/pkg/router"
)

func routesCmd(opts *globalOptions) *cobra.Command {
	var tree bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List registered routes",
		Long: `List the routes loaded from the manifest and --route flags.

With --tree, print the component tree per scheme; nodes holding a
handler are marked with "*".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if tree {
				if t, ok := a.router.Table().(*router.TreeTable); ok {
					fmt.Fprint(out, t.String())
				}
				return nil
			}

			routes := a.router.Routes()
			if len(routes) == 0 {
				warn(out, "no routes registered")
				return nil
			}
			for _, ri := range routes {
				fmt.Fprintln(out, ri.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&tree, "tree", "t", false, "Print the routing tree")
	return cmd
}
