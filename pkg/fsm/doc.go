/*
Package fsm provides a generic deterministic state machine and the cycle
detection that turns one of its trajectories into an ultimately periodic set.

A trajectory starts from a state and consumes an input sequence that is
replayed forever. Because both the state space and the input position are
finite, some (state, position) pair must eventually repeat; from then on the
trajectory is periodic. Cycle records where that repetition starts and how
long it is, together with the steps spent on final states, and
RunCycleFrom packages the result as a *ups.UPS.

# Failure modes

  - ErrEmptyInput: the input sequence has no symbols to replay.
  - ErrMissingTransition (as *TransitionError): the table has no entry for a
    pair the trajectory reached. Tables must cover every reachable pair.
  - ErrNegativeSteps: Trace was asked for a negative number of steps.
*/
package fsm
