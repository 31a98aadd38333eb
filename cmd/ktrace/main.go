// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ktrace ingests a kernel trace file and either dumps its decoded
// records as text or prints a summary of the resulting model.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/swetland/ktrace/ktrace"
)

var log = logrus.New()

var verbosity int

func main() {
	app := &cli.App{
		Name:      "ktrace",
		Usage:     "ingest a kernel trace file and build its timeline model",
		ArgsUsage: "<trace-file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "v", Count: &verbosity, Usage: "verbosity (repeat for more detail)"},
			&cli.BoolFlag{Name: "text", Usage: "print every decoded record as text"},
			&cli.Uint64Flag{Name: "limit", Usage: "stop after N*32 bytes of the trace (0 = empty model)"},
			&cli.BoolFlag{Name: "stats", Usage: "print ingestion counters to stderr"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("ktrace failed")
	}
}

func run(c *cli.Context) error {
	if v := verbosity; v > 0 {
		log.SetLevel(verbosityToLevel(v))
	}

	if c.NArg() != 1 {
		return cli.Exit("expected exactly one trace file argument", 1)
	}
	path := c.Args().Get(0)

	reporter := ktrace.NewLogrusReporter(log)

	f, err := os.Open(path)
	if err != nil {
		return cli.Exit(errors.Wrap(err, "opening trace file"), 1)
	}
	defer f.Close()

	tr := ktrace.New(reporter)

	hasLimit := c.IsSet("limit")
	limitUnits := uint32(c.Uint64("limit"))

	var onRecord func(*ktrace.Record, int64)
	if c.Bool("text") {
		onRecord = func(rec *ktrace.Record, ns int64) {
			fmt.Fprintln(os.Stderr, ktrace.DecodeLine(ns, rec))
		}
	}

	if err := tr.ImportFunc(f, limitUnits, hasLimit, onRecord); err != nil {
		return cli.Exit(errors.Wrap(err, "importing trace"), 1)
	}

	if c.Bool("stats") {
		stats := tr.Stats()
		stats.Dump(os.Stderr)
	}

	return nil
}

func verbosityToLevel(v int) logrus.Level {
	switch {
	case v >= 2:
		return logrus.TraceLevel
	case v == 1:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}
