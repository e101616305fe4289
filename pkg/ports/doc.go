/*
Package ports defines the driven ports (interfaces) of the lockstep solver.

These interfaces decouple the solver from external implementations so that
trajectory results can be memoized in process, in Redis, or not at all.

# Key Interfaces

  - ResultCache: stores the periodic set computed for one (network, start,
    final selector) key.
*/
package ports
