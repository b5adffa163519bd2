// Package datacenter builds the hitting-cost function f_t named throughout
// spec.md §4.2: given a configuration x and a load profile λ at time t, an
// inner convex program splits load across (location, server-type) cells to
// minimize energy cost plus revenue loss, with sub-models for energy
// consumption, electricity pricing, queueing delay, and switching wear.
// Grounded on original_source/implementation/src/model/data_center/model.rs
// (read in full) and its soco-crate counterpart.
package datacenter

// DefaultKey is the key used for the single server/job type in homogeneous
// settings (spec.md §C.2's single-location convenience constructor).
const DefaultKey = ""

// ServerType names one kind of machine available at a location.
type ServerType struct {
	Key            string
	MaxUtilization float64 // utilization above this yields +Inf cost
}

// NewServerType builds a server type with max utilization 1 (full
// utilization allowed, anything above it yields +Inf cost).
func NewServerType(key string) ServerType {
	return ServerType{Key: key, MaxUtilization: 1}
}

// limitUtilization evaluates f() unless s exceeds the server type's
// max_utilization, in which case it returns +Inf without calling f.
func (s ServerType) limitUtilization(util float64, f func() float64) float64 {
	if util <= s.MaxUtilization {
		return f()
	}
	return posInf
}

// JobType names a class of incoming work. ProcessingTimeOn reports the
// processing time (in time units, assuming full utilization) of a job of
// this type on a given server type; must be <= the model's slot length
// delta for every server type it runs on.
type JobType struct {
	Key              string
	ProcessingTimeOn func(ServerType) float64
}

// NewJobType builds a job type with per-server-type processing times drawn
// from a map keyed by server type.
func NewJobType(key string, processingTimes map[string]float64) JobType {
	return JobType{
		Key: key,
		ProcessingTimeOn: func(st ServerType) float64 {
			return processingTimes[st.Key]
		},
	}
}

// ConstJobType builds a job type whose processing time is the same on
// every server type.
func ConstJobType(key string, processingTime float64) JobType {
	return JobType{Key: key, ProcessingTimeOn: func(ServerType) float64 { return processingTime }}
}

// Source is a geographically distinct origin of job arrivals.
type Source struct {
	Key            string
	RoutingDelayTo func(t int, loc Location) float64
}

// ConstSource builds a source with a fixed routing delay to every location.
func ConstSource(key string, routingDelay float64) Source {
	return Source{Key: key, RoutingDelayTo: func(int, Location) float64 { return routingDelay }}
}

// CachedSource builds a source with routing delays keyed by destination
// location, constant over time.
func CachedSource(key string, routingDelayTo map[string]float64) Source {
	return Source{
		Key: key,
		RoutingDelayTo: func(_ int, loc Location) float64 {
			return routingDelayTo[loc.Key]
		},
	}
}

// Location is one data center: a name plus the number of servers of each
// type it hosts.
type Location struct {
	Key string
	M   map[string]int
}

// Model composes the sub-models of spec.md §4.2 into the objective used to
// turn (configuration, load profile) pairs into a hitting cost.
type Model struct {
	Delta             float64 // length of one time slot
	Locations         []Location
	ServerTypes       []ServerType
	Sources           []Source
	JobTypes          []JobType
	EnergyConsumption EnergyConsumptionModel
	EnergyCost        EnergyCostModel
	RevenueLoss       RevenueLossModel
	SwitchingCost     SwitchingCostModel
}

// Single builds a homogeneous, single-location model: one location, one
// source, one job type, and per-server-type sub-models (spec.md §C.2's
// supplemented convenience constructor — the original crates always
// required callers to assemble the slice forms directly).
func Single(delta float64, m map[string]int, serverTypes []ServerType, jobType JobType,
	energyConsumption EnergyConsumptionModel, energyCost EnergyCostModel,
	revenueLoss RevenueLossModel, switchingCost SwitchingCostModel) Model {
	return Model{
		Delta:             delta,
		Locations:         []Location{{Key: DefaultKey, M: m}},
		ServerTypes:       serverTypes,
		Sources:           []Source{ConstSource(DefaultKey, 0)},
		JobTypes:          []JobType{jobType},
		EnergyConsumption: energyConsumption,
		EnergyCost:        energyCost,
		RevenueLoss:       revenueLoss,
		SwitchingCost:     switchingCost,
	}
}

// Network builds a full, possibly heterogeneous multi-location model.
func Network(delta float64, locations []Location, serverTypes []ServerType, sources []Source, jobTypes []JobType,
	energyConsumption EnergyConsumptionModel, energyCost EnergyCostModel,
	revenueLoss RevenueLossModel, switchingCost SwitchingCostModel) Model {
	return Model{
		Delta:             delta,
		Locations:         locations,
		ServerTypes:       serverTypes,
		Sources:           sources,
		JobTypes:          jobTypes,
		EnergyConsumption: energyConsumption,
		EnergyCost:        energyCost,
		RevenueLoss:       revenueLoss,
		SwitchingCost:     switchingCost,
	}
}

// D is the number of problem dimensions: one cell per (location, server
// type) pair.
func (m Model) D() int { return len(m.Locations) * len(m.ServerTypes) }

// E is the number of load types: one per (source, job type) pair.
func (m Model) E() int { return len(m.Sources) * len(m.JobTypes) }

// encode/parse translate between a flat cell index and its (outer, inner)
// coordinates, mirroring model.rs's encode/parse helpers exactly.
func encode(innerLen, outer, inner int) int { return outer*innerLen + inner }

func parse(innerLen, i int) (outer, inner int) {
	outer = i / innerLen
	inner = i - outer*innerLen
	return
}

// Bounds returns the per-cell capacity bounds (number of servers of that
// type at that location), used as the underlying SSCO/SBLO/SLO problem's M.
func (m Model) Bounds() []float64 {
	bounds := make([]float64, m.D())
	for k := range bounds {
		j, st := parse(len(m.ServerTypes), k)
		bounds[k] = float64(m.Locations[j].M[m.ServerTypes[st].Key])
	}
	return bounds
}

// SwitchingCosts returns the per-cell switching cost weights (beta), one
// per server type, repeated per location in cell order.
func (m Model) SwitchingCosts() []float64 {
	perServerType := m.SwitchingCost.SwitchingCosts(m.ServerTypes)
	out := make([]float64, m.D())
	for k := range out {
		_, st := parse(len(m.ServerTypes), k)
		out[k] = perServerType[st]
	}
	return out
}
