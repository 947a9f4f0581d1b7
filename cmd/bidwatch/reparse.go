package main

import (
	"fmt"

	"github.com/jqin/bidwatch"
	"github.com/jqin/bidwatch/ingest"
)

// Run executes the reparse command: bulk re-extraction of every stored
// announcement, replacing the parsed collection wholesale.
func (c *ReparseCmd) Run(deps *Dependencies) error {
	ing := &ingest.Ingestor{
		Extractor: deps.Extractor,
		Store:     deps.Store,
		Logger:    deps.Logger,
	}

	count, err := ing.ReextractAll(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bidwatch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Re-extracted %d records.\n", count)
	return nil
}
