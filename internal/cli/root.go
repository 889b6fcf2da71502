// Package cli implements the cocreatectl command line: offline search over a
// catalog file, highlighting and the recent-search history.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/obinss/CoCreate-MVP/internal/bootstrap"
	"github.com/obinss/CoCreate-MVP/internal/config"
	logpkg "github.com/obinss/CoCreate-MVP/internal/logger"
	recentrepo "github.com/obinss/CoCreate-MVP/internal/repository/recent"
	recentuc "github.com/obinss/CoCreate-MVP/internal/usecase/recent"
)

// Flag names shared across commands.
const (
	FlagCatalog = "catalog"
	FlagStore   = "store"
	FlagJSON    = "json"
)

// DefaultCatalog is the catalog file searched when --catalog is not given.
const DefaultCatalog = "data/items.json"

// historyScope keeps CLI history apart from the server's.
const historyScope = "cli"

type app struct {
	out       io.Writer
	logger    *zap.Logger
	storePath string
	asJSON    bool
}

// NewRootCmd builds the command tree writing to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "cocreatectl",
		Short:         "Search the CoCreate material marketplace catalog",
		Long:          `Offline search, highlighting and recent-search history for CoCreate catalog files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := logpkg.NewLogger("cli")
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		Run: func(c *cobra.Command, _ []string) {
			_ = c.Help()
		},
	}
	root.SetOut(out)
	root.SetErr(out)
	root.PersistentFlags().StringVar(&a.storePath, FlagStore, "",
		"Badger directory for the recent-search history (in-memory when empty)")
	root.PersistentFlags().BoolVar(&a.asJSON, FlagJSON, false, "Print JSON output")

	root.AddCommand(
		a.newSearchCmd(),
		a.newHighlightCmd(),
		a.newRecentCmd(),
		a.newVersionCmd(),
	)
	return root
}

// Execute runs the command line against args.
func Execute(ctx context.Context, out io.Writer, args []string) error {
	root := NewRootCmd(out)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// openHistory opens the history store. The returned func closes it.
func (a *app) openHistory() (*recentuc.Service, func(), error) {
	dbCfg := config.DatabaseConfig{Driver: config.DriverMemory}
	if a.storePath != "" {
		dbCfg = config.DatabaseConfig{Driver: config.DriverBadger, Path: a.storePath}
	}
	store, err := bootstrap.OpenStore(dbCfg, a.logger)
	if err != nil {
		return nil, nil, err
	}
	return recentuc.New(recentrepo.New(store, "cocreate:", historyScope)), store.Close, nil
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
