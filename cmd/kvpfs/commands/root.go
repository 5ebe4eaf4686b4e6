package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kvpfs/kvpfs"
	"github.com/kvpfs/kvpfs/cmd/kvpfs/internal/config"
	_ "github.com/kvpfs/kvpfs/codec/msgpackcodec"
	_ "github.com/kvpfs/kvpfs/codec/yamlcodec"
)

// globals holds the persistent flags shared by all subcommands.
type globals struct {
	configPath string
	root       string
	prefix     string
	ext        string
	verbose    bool

	logger *slog.Logger
}

// NewRootCmd returns the kvpfs root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	g := &globals{}
	cmd := &cobra.Command{
		Use:   "kvpfs",
		Short: "Key-value store with one file per record",
		Long: `kvpfs - A key-value store that keeps each record in its own file.

Records live under <root>/<collection>/<prefix><key>.<ext>. The file
extension selects the codec: json (default), yaml/yml or msgpack/mpk.

Configuration is read from --config, or from $KVPFS_CONFIG. Flags override
the configuration file.

Examples:
  kvpfs create users
  kvpfs put users alice '{"name": "Alice"}'
  kvpfs get users alice
  kvpfs keys users
  kvpfs --root /srv/kv --ext yaml collections`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if g.verbose {
				level = slog.LevelDebug
			}
			g.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&g.configPath, "config", "c", "", "configuration file (default $"+config.EnvConfig+")")
	flags.StringVar(&g.root, "root", "", "root path (default "+kvpfs.DefaultRootPath+")")
	flags.StringVar(&g.prefix, "prefix", "", "record file prefix (default "+kvpfs.DefaultFilePrefix+")")
	flags.StringVar(&g.ext, "ext", "", "record file extension (default "+kvpfs.DefaultFileExtension+")")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(
		newPutCmd(g),
		newGetCmd(g),
		newExistsCmd(g),
		newDelCmd(g),
		newKeysCmd(g),
		newCollectionsCmd(g),
		newCreateCmd(g),
		newDropCmd(g),
	)
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// openStore loads the configuration, applies flag overrides and opens the
// store.
func (g *globals) openStore(ctx context.Context) (*kvpfs.Store, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	if g.root != "" {
		cfg.RootPath = g.root
	}
	if g.prefix != "" {
		cfg.FilePrefix = g.prefix
	}
	if g.ext != "" {
		cfg.FileExtension = g.ext
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	store, err := kvpfs.New(ctx, opts)
	if err != nil {
		return nil, err
	}
	backend := cfg.Backend
	if backend == "" {
		backend = config.BackendLocal
	}
	g.logger.Debug("store opened",
		"backend", backend,
		"root", store.Root(),
		"extensions", store.Codec().Extensions(),
	)
	return store, nil
}
