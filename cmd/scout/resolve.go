package main

import (
	"fmt"

	"github.com/fwojciec/scout"
)

// Run executes the resolve command.
func (c *ResolveCmd) Run(deps *Dependencies) error {
	site, err := deps.Resolver.Resolve(deps.Ctx, c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scout.ErrorKindMessage(scout.ErrorCode(err)))
		return err
	}

	fmt.Fprintln(deps.Stdout, site.OriginURL)
	return nil
}
