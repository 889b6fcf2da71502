package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obinss/CoCreate-MVP/internal/version"
)

func (a *app) newRecentCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "recent",
		Short: "Manage the recent-search history",
	}

	c.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recent searches, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			history, closeHistory, err := a.openHistory()
			if err != nil {
				return err
			}
			defer closeHistory()

			queries, err := history.List(c.Context())
			if err != nil {
				return err
			}
			if a.asJSON {
				return a.printJSON(queries)
			}
			for _, q := range queries {
				if _, err := fmt.Fprintln(a.out, q); err != nil {
					return err
				}
			}
			return nil
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "add <query>",
		Short: "Record a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			history, closeHistory, err := a.openHistory()
			if err != nil {
				return err
			}
			defer closeHistory()
			return history.Save(c.Context(), args[0])
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every recent search",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			history, closeHistory, err := a.openHistory()
			if err != nil {
				return err
			}
			defer closeHistory()
			return history.Clear(c.Context())
		},
	})
	return c
}

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if a.asJSON {
				return a.printJSON(map[string]string{
					"version": version.Version,
					"commit":  version.Commit,
					"date":    version.Date,
				})
			}
			_, err := fmt.Fprintln(a.out, "cocreatectl "+version.String())
			return err
		},
	}
}
