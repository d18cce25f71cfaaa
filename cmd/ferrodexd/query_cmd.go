package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvalberg/ferrodex/internal/config"
	"github.com/vvalberg/ferrodex/internal/obs"
	"github.com/vvalberg/ferrodex/internal/queryprep"
)

var queryIndexRoot string

var queryCmd = &cobra.Command{
	Use:   "query <query string>",
	Short: "Build the index once and answer a single query on stdout",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryIndexRoot, "root", ".", "directory to index before querying")
}

func runQuery(cmd *cobra.Command, args []string) error {
	v := viperFromFlags(cmd)
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg.Index.Root = queryIndexRoot

	log := obs.NewLogger(cmd.OutOrStderr(), cfg.Log.Level, cfg.Log.Pretty)

	idx, err := buildIndex(cfg.Index, log)
	if err != nil {
		return err
	}

	tokens := queryprep.Tokens(args[0])
	results, err := idx.Query(tokens)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "no matches")
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(out, "%.4f\t%s\n", r.Score, r.Path)
	}
	return nil
}
