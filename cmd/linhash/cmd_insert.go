package main

import (
	"context"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/skyline93/linhash/internal/output"
)

var cmdInsert = &cobra.Command{
	Use:   "insert [flags] FILE",
	Short: "Insert values from a file and print each distinct value once",
	Long: `
The "insert" command reads FILE, one integer per line, inserts every value
into a linear hash table and prints each value the first time it is seen, in
input order. FILE may be zstd compressed.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if FILE does not exist or contains a line that is not an
integer. Values accepted before the offending line are still printed.
`,
	Args:              cobra.ExactArgs(1),
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInsert(cmd.Context(), insertOptions, globalOptions, args[0], cmd.OutOrStdout())
	},
}

// InsertOptions bundles all options for the insert command.
type InsertOptions struct {
	Digest bool
	Stats  bool
}

var insertOptions InsertOptions

func init() {
	cmdRoot.AddCommand(cmdInsert)

	f := cmdInsert.Flags()
	f.BoolVar(&insertOptions.Digest, "digest", false, "log the sha256 digest of the printed values")
	f.BoolVar(&insertOptions.Stats, "stats", false, "log table statistics when done")
}

func runInsert(ctx context.Context, opts InsertOptions, gopts GlobalOptions, name string, stdout io.Writer) error {
	out := output.NewWriter(stdout)

	tbl, err := loadTable(ctx, gopts.Table, name, out.WriteValue)
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		return err
	}

	if opts.Digest {
		digest, err := out.Digest()
		if err != nil {
			return err
		}
		log.WithField("values", out.Count()).Infof("digest %s", digest)
	}

	if opts.Stats {
		logStats(tbl)
	}

	return nil
}
