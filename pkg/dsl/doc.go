/*
Package dsl provides a fluent builder for constructing networks in Go code
instead of parsing them from text or YAML.

Example usage:

	b := dsl.New("LR")
	b.Add("11A").Left("11B").Right("XXX")
	b.Add("11B").Left("XXX").Right("11Z")
	b.Add("11Z").Left("11B").Right("XXX")
	b.Add("XXX").Loop()

	net, err := b.Build()
	if err != nil {
		// dangling successor, bad instruction, ...
	}
	sol, err := lockstep.New().Solve(ctx, net)
*/
package dsl
