package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

// parseValue interprets a command line value as JSON, falling back to the
// literal string.
func parseValue(arg string) interface{} {
	var v interface{}
	if err := json.Unmarshal([]byte(arg), &v); err != nil {
		return arg
	}
	return v
}

// printValue writes strings verbatim and everything else as indented JSON.
func printValue(w io.Writer, v interface{}) error {
	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func newPutCmd(g *globals) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "put <collection> <key> <value>",
		Short: "Store a value under a key",
		Long: `Store a value under a key, replacing any previous value.

The value is parsed as JSON; if it is not valid JSON it is stored as a
string. Use --raw to always store a string.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.openStore(cmd.Context())
			if err != nil {
				return err
			}
			var value interface{} = args[2]
			if !raw {
				value = parseValue(args[2])
			}
			if err := store.Put(cmd.Context(), args[0], args[1], value); err != nil {
				return err
			}
			g.logger.Debug("put", "collection", args[0], "key", args[1])
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "store the value as a string")
	return cmd
}

func newGetCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "get <collection> <key>",
		Short: "Print the value stored under a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.openStore(cmd.Context())
			if err != nil {
				return err
			}
			value, found, err := store.Get(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if !found {
				return xerrors.Errorf("%s/%s: not found", args[0], args[1])
			}
			return printValue(cmd.OutOrStdout(), value)
		},
	}
}

func newExistsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "exists <collection> <key>",
		Short: "Report whether a key exists",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.openStore(cmd.Context())
			if err != nil {
				return err
			}
			exists, err := store.Exists(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), exists)
			return err
		},
	}
}

func newDelCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "del <collection> <key>...",
		Aliases: []string{"rm", "remove"},
		Short:   "Remove keys",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.openStore(cmd.Context())
			if err != nil {
				return err
			}
			for _, key := range args[1:] {
				removed, err := store.Del(cmd.Context(), args[0], key)
				if err != nil {
					return err
				}
				if !removed {
					g.logger.Warn("key not found", "collection", args[0], "key", key)
				}
			}
			return nil
		},
	}
}
