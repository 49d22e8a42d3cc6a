package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mpgdash/internal/config"
	"mpgdash/internal/store"
)

// NewViewsCmd creates the views command group.
func NewViewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "views",
		Short: "Manage saved filter selections",
		Long: `Views manages the named filter selections shared with the web
dashboard. They live in a local SQLite database.

Examples:
  mpgdash views list
  mpgdash views save "japan compacts" --origin japan --cylinders 4
  mpgdash views delete "japan compacts"`,
	}

	cmd.PersistentFlags().String("store", "", "Path to the saved-view database (overrides MPGDASH_STORE)")

	cmd.AddCommand(newViewsListCmd())
	cmd.AddCommand(newViewsSaveCmd())
	cmd.AddCommand(newViewsDeleteCmd())
	return cmd
}

// openStore opens the saved-view database configured by flag, env, or
// the user data directory default.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	path, _ := cmd.Flags().GetString("store")
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		path = cfg.Store.Path
	}
	if path == "" {
		var err error
		if path, err = store.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return store.Open(path)
}

func newViewsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved views",
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			views, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(views) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved views.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tORIGINS\tCYLINDERS\tYEARS\tID")
			for _, v := range views {
				state := v.State()
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d-%d\t%s\n",
					v.Name, joinOrigins(state), joinCylinders(state), v.YearMin, v.YearMax, v.ID)
			}
			return tw.Flush()
		},
	}
}

func newViewsSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the flag selection under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dashboard, err := newDashboard(cmd)
			if err != nil {
				return err
			}
			ds, err := dashboard.Dataset()
			if err != nil {
				return err
			}

			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			view, err := st.Save(cmd.Context(), args[0], filterFromFlags(cmd, ds))
			if err != nil {
				return err
			}
			color.Green("Saved view %q (%s)", view.Name, view.ID)
			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

func newViewsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id-or-name>",
		Short: "Delete a saved view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			color.Green("Deleted view %q", args[0])
			return nil
		},
	}
}
