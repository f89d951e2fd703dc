// Package pipeline is Athena's compiler driver: it sequences parse,
// validate, enrich, sort and emit over one source file, failing fast at the
// first error-severity diagnostic and never writing output on failure.
package pipeline

import (
	"athena/pkg/clock"
	"athena/pkg/compose"
	"athena/pkg/defaults"
	"athena/pkg/depsort"
	"athena/pkg/diag"
	"athena/pkg/model"
	"athena/pkg/parser"
	"athena/pkg/validate"
)

// Result is the outcome of a successful compile.
type Result struct {
	YAML       string
	Deployment *model.Deployment
}

// Compile runs the full pipeline over src. On success it returns a Result
// plus any warnings collected along the way. On failure Result is nil and
// the Collector holds at least one error-severity Diagnostic.
func Compile(src string, clk clock.Clock) (*Result, diag.Collector) {
	var coll diag.Collector

	dep, perr := parser.Parse(src)
	if perr != nil {
		coll.Add(*perr)
		return nil, coll
	}

	validate.Validate(dep, &coll)
	if coll.HasErrors() {
		return nil, coll
	}

	defaults.Enrich(dep, clk)

	dep.Services = depsort.Sort(dep.Services, &coll)
	if coll.HasErrors() {
		return nil, coll
	}

	out, err := compose.Emit(dep)
	if err != nil {
		coll.Internal(err.Error())
		return nil, coll
	}

	return &Result{YAML: out, Deployment: dep}, coll
}
