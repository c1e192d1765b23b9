package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-nsor/axis"
	"github.com/cwbudde/algo-nsor/params"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Inspect and update the parameter file",
}

var paramsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every field of the parameter file",
	Args:  cobra.NoArgs,
	RunE:  runParamsShow,
}

var paramsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE...",
	Short: "Set a field of the parameter file",
	Long: `Set KEY to the given values. Cursor and limit fields must hold two
numbers. Other keys in the file are preserved.

Examples:
  nsorphase params set freq_cursor 990 1010
  nsorphase params set time_x_limit 0 0.5`,
	Args: cobra.MinimumNArgs(2),
	RunE: runParamsSet,
}

func init() {
	rootCmd.AddCommand(paramsCmd)
	paramsCmd.AddCommand(paramsShowCmd)
	paramsCmd.AddCommand(paramsSetCmd)
}

func runParamsShow(cmd *cobra.Command, args []string) error {
	set, err := params.Read(cfg.ParameterFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("parameter file %s does not exist", cfg.ParameterFile)
		}
		return err
	}

	rec := make(map[string]any, len(set))
	for _, key := range set.Fields() {
		rec[params.Label(key)] = set.Text(key)
	}
	if name := set.Text(params.FileName); name != "" {
		rec[params.Label(params.FileName)] = name
	}
	return writeRecord(cmd.OutOrStdout(), cfg.Output.Format, rec)
}

func runParamsSet(cmd *cobra.Command, args []string) error {
	key, text := args[0], strings.Join(args[1:], " ")
	if _, _, ok := axis.ParseKey(key); ok {
		if _, _, err := params.ParseRange(text); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return params.Save(cfg.ParameterFile, params.Set{key: params.FromText(text)})
}
