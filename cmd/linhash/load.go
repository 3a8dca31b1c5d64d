package main

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/skyline93/linhash/internal/input"
	"github.com/skyline93/linhash/internal/linhash"
)

// AcceptFunc is called for every value inserted into the table for the
// first time, in input order.
type AcceptFunc func(v int64) error

// loadTable feeds every value of the named file into a new table. The file
// is read in a separate goroutine, the table itself is only ever touched by
// the calling side of the pipeline.
func loadTable(ctx context.Context, cfg linhash.Config, name string, accept AcceptFunc) (*linhash.Table, error) {
	tbl, err := linhash.New(cfg)
	if err != nil {
		return nil, err
	}

	rd, err := input.Open(name)
	if err != nil {
		if input.IsNotExist(err) {
			return nil, errors.Wrap(err, "file not found")
		}
		return nil, err
	}
	defer rd.Close()

	wg, wgCtx := errgroup.WithContext(ctx)
	values := make(chan int64, 1024)

	wg.Go(func() error {
		return input.Stream(wgCtx, rd, values)
	})

	wg.Go(func() error {
		var n int
		for v := range values {
			n++
			if !tbl.Insert(v) || accept == nil {
				continue
			}
			if err := accept(v); err != nil {
				return err
			}
		}
		log.WithField("values", n).Debug("input consumed")
		return nil
	})

	if err := wg.Wait(); err != nil {
		return tbl, errors.Wrapf(err, "load %v", name)
	}
	return tbl, nil
}

func logStats(tbl *linhash.Table) {
	cfg := tbl.Config()
	st := tbl.Stats()
	log.WithFields(log.Fields{
		"capacity":      cfg.CapacityBytes,
		"value_size":    cfg.ValueSize,
		"threshold":     cfg.Threshold,
		"curr_mod":      st.CurrMod,
		"next_mod":      st.NextMod,
		"split_pointer": st.SplitPointer,
		"buckets":       st.BucketCount,
		"blocks":        st.TotalBlocks,
		"uniques":       st.UniqueCount,
		"splits":        st.Splits,
		"rounds":        st.Rounds,
		"density":       st.Density,
	}).Info("table stats")
}
