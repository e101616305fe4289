/*
Package domain contains the core models shared by the lockstep solver, its
adapters and its command line.

It is kept free of I/O: parsing lives in internal/compiler, persistence in
pkg/adapters, and the periodic set algebra in pkg/ups.

# Key Entities

  - Network: the instruction string plus every node with its left and right
    successors.
  - Selector: picks start or final nodes by exact name or by suffix.
  - Trajectory: the set of steps at which one start node stands on a final node.
  - Solution: the first step shared by every trajectory, with the evidence.
*/
package domain
