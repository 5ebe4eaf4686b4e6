package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newKeysCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "keys <collection>",
		Short: "List the keys in a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.openStore(cmd.Context())
			if err != nil {
				return err
			}
			keys, err := store.Keys(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, key := range keys {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), key); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newCollectionsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := g.openStore(cmd.Context())
			if err != nil {
				return err
			}
			names, err := store.Collections(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newCreateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "create <collection>...",
		Short: "Create collections",
		Long:  "Create collections. Existing collections are left untouched.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.openStore(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range args {
				if err := store.CreateCollection(cmd.Context(), name); err != nil {
					return err
				}
				g.logger.Debug("collection created", "collection", name)
			}
			return nil
		},
	}
}

func newDropCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "drop <collection>",
		Short: "Drop a collection and all its records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.openStore(cmd.Context())
			if err != nil {
				return err
			}
			dropped, err := store.DropCollection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !dropped {
				g.logger.Warn("collection not found", "collection", args[0])
			}
			return nil
		},
	}
}
