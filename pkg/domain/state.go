package domain

import "github.com/aretw0/lockstep/pkg/ups"

// Trajectory is the outcome of cycle detection from one start node.
type Trajectory struct {
	Start string `json:"start"`
	// Set holds every step at which the trajectory stands on a final node.
	Set *ups.UPS `json:"set"`
	// Cached is true when Set came from a result cache.
	Cached bool `json:"cached,omitempty"`
}

// Solution is the first step at which every trajectory stands on a final
// node simultaneously.
type Solution struct {
	Steps        uint64       `json:"steps"`
	Trajectories []Trajectory `json:"trajectories"`
	// Combined is the intersection of every trajectory set.
	Combined *ups.UPS `json:"combined"`
}
