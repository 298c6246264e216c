package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vishen/sim8086/internal/decoder"
	"github.com/vishen/sim8086/internal/log"
	"github.com/vishen/sim8086/internal/stats"
)

func newStatsCmd(cfg *config) *cobra.Command {
	var chartPath string

	cmd := &cobra.Command{
		Use:   "stats [flags] <file>",
		Short: "Count operand forms and addressing modes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0], cfg.maxSize)
			if err != nil {
				return err
			}
			insts, err := decoder.Disassemble(data)
			if err != nil {
				return fmt.Errorf("disassemble %s: %w", args[0], err)
			}

			s := stats.Collect(insts)
			if chartPath == "" {
				return s.WriteTable(cmd.OutOrStdout())
			}

			f, err := os.Create(chartPath)
			if err != nil {
				return err
			}
			if err := s.RenderChart(f); err != nil {
				f.Close()
				return fmt.Errorf("render %s: %w", chartPath, err)
			}
			log.Info(log.CLI, "wrote chart", "path", chartPath)
			return f.Close()
		},
	}
	cmd.Flags().StringVar(&chartPath, "chart", "", "write an HTML bar chart to this path instead of printing a table")
	return cmd
}
