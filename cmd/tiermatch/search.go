package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tiermatch"
	"github.com/kailas-cloud/tiermatch/internal/dataset"
	logpkg "github.com/kailas-cloud/tiermatch/internal/logger"
)

type searchFlags struct {
	data  string
	json  bool
	limit int
}

func newSearchCmd(a *app) *cobra.Command {
	f := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search a dataset",
		Long: `Search organizations, workers or transactions in a YAML dataset.

The dataset path comes from --data or from dataset.path in the config file.`,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&f.data, "data", "", "dataset file (overrides dataset.path)")
	flags.BoolVar(&f.json, "json", false, "output as JSON")
	flags.IntVar(&f.limit, "limit", 0, "maximum number of results (overrides match.limit)")

	cmd.AddCommand(
		newSearchKindCmd(a, f, "orgs", []string{"organizations", "org"},
			"Search organizations by name, tax id, address or contact person",
			func(e *tiermatch.Engine, ds *dataset.Dataset, q string) table {
				return organizationTable(e.SearchOrganizations(ds.Organizations, q))
			}),
		newSearchKindCmd(a, f, "workers", []string{"worker"},
			"Search workers and their active dependents",
			func(e *tiermatch.Engine, ds *dataset.Dataset, q string) table {
				return workerTable(e.SearchWorkers(ds.Workers, q))
			}),
		newSearchKindCmd(a, f, "txns", []string{"transactions", "txn"},
			"Search transactions by number, organization or notes",
			func(e *tiermatch.Engine, ds *dataset.Dataset, q string) table {
				return transactionTable(e.SearchTransactions(ds.Transactions, q))
			}),
	)
	return cmd
}

type searchFunc func(e *tiermatch.Engine, ds *dataset.Dataset, query string) table

func newSearchKindCmd(
	a *app, f *searchFlags, use string, aliases []string, short string, run searchFunc,
) *cobra.Command {
	return &cobra.Command{
		Use:     use + " QUERY...",
		Aliases: aliases,
		Short:   short,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logpkg.FromContext(cmd.Context())

			path := f.data
			if path == "" {
				path = a.cfg.Dataset.Path
			}
			if path == "" {
				return errors.New("no dataset: pass --data or set dataset.path")
			}
			ds, err := dataset.LoadFile(path)
			if err != nil {
				return err
			}

			limit := a.cfg.Match.Limit
			if cmd.Flags().Changed("limit") {
				limit = f.limit
			}
			engine, err := a.newEngine(logger, limit)
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			logger.Debug("Searching",
				zap.String("kind", use),
				zap.String("query", query),
				zap.String("dataset", path),
			)

			t := run(engine, ds, query)
			if f.json {
				err = t.writeJSON(cmd.OutOrStdout())
			} else {
				t.render(cmd.OutOrStdout())
			}
			if err != nil {
				return err
			}

			if a.registry != nil {
				return dumpMetrics(cmd.ErrOrStderr(), a)
			}
			return nil
		},
	}
}

// dumpMetrics writes the invocation's metrics in the Prometheus text format.
func dumpMetrics(w io.Writer, a *app) error {
	families, err := a.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}
