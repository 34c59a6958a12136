package main

import (
	"fmt"

	"github.com/fwojciec/scout"
)

// Run executes the classify command.
func (c *ClassifyCmd) Run(deps *Dependencies) error {
	in := scout.Classify(c.Input)
	fmt.Fprintf(deps.Stdout, "%s\t%s\n", in.Kind, in.Value)
	return nil
}
