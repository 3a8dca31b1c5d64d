package main

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/skyline93/linhash/internal/linhash"
)

// GlobalOptions hold options shared by all commands.
type GlobalOptions struct {
	Verbose   bool
	LogFormat string

	Table linhash.Config
}

var globalOptions = GlobalOptions{
	LogFormat: "text",
	Table:     linhash.NewConfig(),
}

func init() {
	f := cmdRoot.PersistentFlags()
	f.BoolVarP(&globalOptions.Verbose, "verbose", "v", false, "log bucket splits and other details")
	f.StringVar(&globalOptions.LogFormat, "log-format", globalOptions.LogFormat, "log format, `text` or `json`")

	f.IntVar(&globalOptions.Table.CapacityBytes, "capacity", linhash.DefaultCapacityBytes, "byte capacity of one block")
	f.IntVar(&globalOptions.Table.ValueSize, "value-size", linhash.DefaultValueSize, "bytes accounted per value")
	f.Float64Var(&globalOptions.Table.Threshold, "threshold", linhash.DefaultThreshold, "density above which the next bucket is split")
}

func setupLogging(opts GlobalOptions) error {
	switch opts.LogFormat {
	case "text":
		log.SetFormatter(&log.TextFormatter{})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return errors.Errorf("invalid log format %q", opts.LogFormat)
	}

	if opts.Verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	return nil
}
