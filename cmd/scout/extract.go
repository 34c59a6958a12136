package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/scout"
)

// output is the JSON document printed by the extract command.
type output struct {
	Input  string                 `json:"input"`
	OK     bool                   `json:"ok"`
	Site   *scout.ResolvedSite    `json:"site,omitempty"`
	Record *scout.CandidateRecord `json:"record,omitempty"`
	Error  *outputError           `json:"error,omitempty"`
}

type outputError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	result := deps.Runner.Run(deps.Ctx, c.Query)

	out := output{
		Input:  c.Query,
		OK:     result.OK(),
		Site:   result.Site,
		Record: result.Record,
	}
	if !result.OK() {
		out.Error = &outputError{
			Kind:    result.Kind(),
			Message: scout.ErrorKindMessage(result.Kind()),
			Detail:  result.Detail(),
		}
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}

	if !result.OK() {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scout.ErrorKindMessage(result.Kind()))
		return result.Err
	}
	return nil
}
