// Package errs defines the fixed error taxonomy shared by every layer of
// scosim: problem verification, online algorithm preconditions, and
// data-center model evaluation.
package errs

import "fmt"

// Invalid is returned when a Problem fails its verification predicate.
type Invalid struct {
	Msg string
}

func (e *Invalid) Error() string { return fmt.Sprintf("invalid problem: %s", e.Msg) }

// UnsupportedPredictionWindow is returned by algorithms that require w = 0.
type UnsupportedPredictionWindow struct {
	W int
}

func (e *UnsupportedPredictionWindow) Error() string {
	return fmt.Sprintf("unsupported prediction window: w=%d", e.W)
}

// UnsupportedProblemDimension is returned by 1-D-only algorithms given d != 1.
type UnsupportedProblemDimension struct {
	D int
}

func (e *UnsupportedProblemDimension) Error() string {
	return fmt.Sprintf("unsupported problem dimension: d=%d", e.D)
}

// UnsupportedInvertedCost is returned when an offline algorithm that cannot
// model "powering down" is asked to.
type UnsupportedInvertedCost struct{}

func (e *UnsupportedInvertedCost) Error() string { return "unsupported inverted cost" }

// UnsupportedLConstrainedMovement is returned when an algorithm that cannot
// cap total movement is given a cap.
type UnsupportedLConstrainedMovement struct{}

func (e *UnsupportedLConstrainedMovement) Error() string {
	return "unsupported l-constrained movement"
}

// OnlineInconsistentCurrentTimeSlot signals that the driver invariant
// t_end = xs.t_end()+1 was violated.
type OnlineInconsistentCurrentTimeSlot struct {
	Expected, Got int
}

func (e *OnlineInconsistentCurrentTimeSlot) Error() string {
	return fmt.Sprintf("online inconsistent current time slot: expected %d, got %d", e.Expected, e.Got)
}

// OnlineOutOfDateMemory signals that the supplied memory list does not cover
// the prior time slots.
type OnlineOutOfDateMemory struct {
	PreviousTimeSlots, MemoryEntries int
}

func (e *OnlineOutOfDateMemory) Error() string {
	return fmt.Sprintf("online out of date memory: previous_time_slots=%d memory_entries=%d",
		e.PreviousTimeSlots, e.MemoryEntries)
}

// MatrixMustBeInvertible is returned when a Mahalanobis-norm switching cost
// is constructed from a singular covariance matrix.
type MatrixMustBeInvertible struct{}

func (e *MatrixMustBeInvertible) Error() string { return "matrix must be invertible" }

// Data-center model-output failures. These are reported alongside a +Inf
// cost rather than aborting the calling algorithm by default.

// DemandExceedingSupply: SLO total provisioned capacity is below the load.
type DemandExceedingSupply struct {
	Demand, Supply float64
}

func (e *DemandExceedingSupply) Error() string {
	return fmt.Sprintf("demand %.6f exceeds supply %.6f", e.Demand, e.Supply)
}

// InfiniteDelay: the queueing model blew up (arrival rate >= service rate).
type InfiniteDelay struct {
	ArrivalRate, ServiceRate float64
}

func (e *InfiniteDelay) Error() string {
	return fmt.Sprintf("infinite delay: arrival_rate=%.6f service_rate=%.6f", e.ArrivalRate, e.ServiceRate)
}

// LoadToInactiveServer: the optimizer proposed positive load to a zero-server cell.
type LoadToInactiveServer struct {
	Cell int
}

func (e *LoadToInactiveServer) Error() string {
	return fmt.Sprintf("load assigned to inactive server at cell %d", e.Cell)
}

// OutsideDecisionSpace: a configuration fell outside its declared bounds.
type OutsideDecisionSpace struct {
	Dimension int
	Value     float64
	Lo, Hi    float64
}

func (e *OutsideDecisionSpace) Error() string {
	return fmt.Sprintf("value %.6f outside decision space [%.6f, %.6f] at dimension %d",
		e.Value, e.Lo, e.Hi, e.Dimension)
}

// SLOMaxUtilizationExceeded: per-server utilization limit breached.
type SLOMaxUtilizationExceeded struct {
	ServerType         int
	Utilization, Limit float64
}

func (e *SLOMaxUtilizationExceeded) Error() string {
	return fmt.Sprintf("server type %d utilization %.6f exceeds limit %.6f",
		e.ServerType, e.Utilization, e.Limit)
}
