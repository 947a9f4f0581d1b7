package main

import (
	"fmt"

	"github.com/jqin/bidwatch"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	records, err := deps.Store.LoadRecords(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bidwatch.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No records stored. Use 'bidwatch run' to ingest announcements.")
		return nil
	}

	for i, rec := range records {
		name := rec.Extracted.ProjectName
		if name == "" {
			name = rec.RawMeta.Title
		}
		fmt.Fprintf(deps.Stdout, "%d. %s  %s  candidates=%d  %s\n",
			i+1, rec.ID, name, len(rec.Extracted.Candidates), rec.Extracted.SourceURL)
	}

	return nil
}
