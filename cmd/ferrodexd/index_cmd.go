package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvalberg/ferrodex/internal/config"
	"github.com/vvalberg/ferrodex/internal/obs"
)

var indexCmd = &cobra.Command{
	Use:   "index <root>",
	Short: "Walk a directory, build the index, and report corpus stats",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	v := viperFromFlags(cmd)
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg.Index.Root = args[0]

	log := obs.NewLogger(cmd.OutOrStderr(), cfg.Log.Level, cfg.Log.Pretty)

	idx, err := buildIndex(cfg.Index, log)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "indexed %d documents under %s\n", idx.DocumentCount(), cfg.Index.Root)
	return nil
}
