/*
Package lockstep finds the first step at which several walks through a
labelled network all stand on a final node at the same time.

A network pairs an instruction string such as "LRRL" with nodes that each
have a left and a right successor. Starting from a node and replaying the
instructions forever, a walk eventually revisits a (node, instruction
position) pair and becomes periodic. The solver turns each walk into an
ultimately periodic set of step counts (see package ups), intersects the
sets, and reports the smallest element.

# Usage

	net, err := compiler.NewParser().ParseFile("network.txt")
	if err != nil {
		log.Fatal(err)
	}

	solver := lockstep.New(
		lockstep.WithStart(domain.BySuffix("A")),
		lockstep.WithFinal(domain.BySuffix("Z")),
	)
	sol, err := solver.Solve(ctx, net)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(sol.Steps)

Walks are explored concurrently and may be memoized through a
ports.ResultCache (in memory or in Redis). Because intersection is
commutative and associative, the result does not depend on the order in
which walks finish.
*/
package lockstep
