package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/skyline93/linhash/internal/linhash"
)

var cmdStats = &cobra.Command{
	Use:   "stats [flags] FILE",
	Short: "Show the bucket layout after loading a file",
	Long: `
The "stats" command loads FILE like "insert" does, without printing the
values, and shows the resulting buckets and table counters.

EXIT STATUS
===========

Exit status is 0 if the command was successful, and non-zero if there was any error.
`,
	Args:              cobra.ExactArgs(1),
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats(cmd.Context(), statsOptions, globalOptions, args[0], cmd.OutOrStdout())
	},
}

// StatsOptions bundles all options for the stats command.
type StatsOptions struct {
	SummaryOnly bool
}

var statsOptions StatsOptions

func init() {
	cmdRoot.AddCommand(cmdStats)

	f := cmdStats.Flags()
	f.BoolVar(&statsOptions.SummaryOnly, "summary", false, "only show the table counters")
}

func runStats(ctx context.Context, opts StatsOptions, gopts GlobalOptions, name string, stdout io.Writer) error {
	tbl, err := loadTable(ctx, gopts.Table, name, nil)
	if err != nil {
		return err
	}

	if !opts.SummaryOnly {
		printBuckets(stdout, tbl)
	}
	printSummary(stdout, tbl.Stats())
	return nil
}

func printBuckets(w io.Writer, tbl *linhash.Table) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Bucket", "Blocks", "Values"})
	tw.SetAlignment(tablewriter.ALIGN_RIGHT)

	tbl.Buckets(func(key int, blocks [][]int64) bool {
		n := 0
		for _, blk := range blocks {
			n += len(blk)
		}
		tw.Append([]string{strconv.Itoa(key), strconv.Itoa(len(blocks)), strconv.Itoa(n)})
		return true
	})
	tw.Render()
}

func printSummary(w io.Writer, st linhash.Stats) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Counter", "Value"})
	tw.SetAutoFormatHeaders(false)

	tw.AppendBulk([][]string{
		{"curr_mod", strconv.FormatInt(st.CurrMod, 10)},
		{"next_mod", strconv.FormatInt(st.NextMod, 10)},
		{"split_pointer", strconv.Itoa(st.SplitPointer)},
		{"bucket_count", strconv.Itoa(st.BucketCount)},
		{"total_blocks", strconv.Itoa(st.TotalBlocks)},
		{"unique_count", strconv.Itoa(st.UniqueCount)},
		{"splits", strconv.Itoa(st.Splits)},
		{"rounds", strconv.Itoa(st.Rounds)},
		{"density", fmt.Sprintf("%.4f", st.Density)},
	})
	tw.Render()
}
