// Package scenario loads a YAML scenario description and builds the
// data-center Model plus SSCO problem instance it describes, the way the
// teacher's sim.LoadConfig (internal/teacherref/config.go, now removed)
// loads a vLLM deployment from YAML: a plain struct with yaml tags, a
// Validate method reporting every violated constraint via fmt.Errorf,
// and a DefaultScenario constructor supplying sane defaults.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/datacenter"
	"github.com/jonhue/scosim/problem"
)

// DataCenter describes a single homogeneous data-center location: one
// server type, one job type, one source — the common case exercised by
// the CLI's scenario runner. Wiring a full heterogeneous Network
// scenario is left to callers of scosim/datacenter directly.
type DataCenter struct {
	Delta               float64   `yaml:"delta"`
	Servers             int       `yaml:"servers"`
	ProcessingTime       float64   `yaml:"processing_time"`
	EnergyPhiMin         float64   `yaml:"energy_phi_min"`
	EnergyPhiMax         float64   `yaml:"energy_phi_max"`
	EnergyPricePerWatt   float64   `yaml:"energy_price_per_watt"`
	RevenueGamma         float64   `yaml:"revenue_gamma"`
	RevenueDelta         float64   `yaml:"revenue_delta"`
	SwitchingEnergyCost  float64   `yaml:"switching_energy_cost"`
	SwitchingEpsilon     float64   `yaml:"switching_epsilon"`
	SwitchingDelta       float64   `yaml:"switching_delta"`
	SwitchingTau         float64   `yaml:"switching_tau"`
	SwitchingRho         float64   `yaml:"switching_rho"`
	Loads                []float64 `yaml:"loads"`
}

// Validate checks DataCenter's fields the way VLLMEngineConfig.Validate
// does: one fmt.Errorf per violated constraint, no custom error types.
func (d DataCenter) Validate() error {
	if d.Delta <= 0 {
		return fmt.Errorf("delta must be > 0, got %v", d.Delta)
	}
	if d.Servers <= 0 {
		return fmt.Errorf("servers must be > 0, got %d", d.Servers)
	}
	if d.ProcessingTime <= 0 || d.ProcessingTime > d.Delta {
		return fmt.Errorf("processing_time must be in (0, delta], got %v", d.ProcessingTime)
	}
	if d.EnergyPhiMin < 0 || d.EnergyPhiMax <= d.EnergyPhiMin {
		return fmt.Errorf("energy_phi_max must be > energy_phi_min >= 0, got min=%v max=%v", d.EnergyPhiMin, d.EnergyPhiMax)
	}
	if d.EnergyPricePerWatt <= 0 {
		return fmt.Errorf("energy_price_per_watt must be > 0, got %v", d.EnergyPricePerWatt)
	}
	if d.RevenueGamma <= 0 {
		return fmt.Errorf("revenue_gamma must be > 0, got %v", d.RevenueGamma)
	}
	if len(d.Loads) == 0 {
		return fmt.Errorf("loads must have at least one entry")
	}
	for i, l := range d.Loads {
		if l < 0 {
			return fmt.Errorf("loads[%d] must be >= 0, got %v", i, l)
		}
	}
	return nil
}

// Model builds the homogeneous single-location datacenter.Model this
// config describes, via datacenter.Single (spec.md §C.2's convenience
// constructor).
func (d DataCenter) Model() datacenter.Model {
	const key = datacenter.DefaultKey
	return datacenter.Single(
		d.Delta,
		map[string]int{key: d.Servers},
		[]datacenter.ServerType{datacenter.NewServerType(key)},
		datacenter.ConstJobType(key, d.ProcessingTime),
		datacenter.NewEnergyConsumptionModel(map[string]datacenter.EnergyConsumption{
			key: {Kind: datacenter.Linear, PhiMin: d.EnergyPhiMin, PhiMax: d.EnergyPhiMax},
		}),
		datacenter.NewLinearEnergyCostModel(func(int) float64 { return d.EnergyPricePerWatt }),
		datacenter.NewRevenueLossModel(map[string]datacenter.MinimalDetectableDelay{
			key: {Gamma: d.RevenueGamma, Delta: d.RevenueDelta},
		}),
		datacenter.NewSwitchingCostModel(map[string]datacenter.SwitchingCost{
			key: {
				EnergyCost: d.SwitchingEnergyCost, PhiMin: d.EnergyPhiMin, PhiMax: d.EnergyPhiMax,
				Epsilon: d.SwitchingEpsilon, Delta: d.SwitchingDelta, Tau: d.SwitchingTau, Rho: d.SwitchingRho,
			},
		}),
	)
}

// LoadProfiles converts the flat per-slot totals into single-job-type
// LoadProfiles, one per time slot.
func (d DataCenter) LoadProfiles() []scosim.LoadProfile {
	out := make([]scosim.LoadProfile, len(d.Loads))
	for i, l := range d.Loads {
		out[i] = scosim.SingleLoadProfile(l)
	}
	return out
}

// Algorithm selects which online/offline algorithm the CLI runs and its
// tunable parameters. Not every field applies to every algorithm; unused
// fields are ignored (matching the teacher's config style of one struct
// covering a family of related run modes rather than per-mode subtypes).
type Algorithm struct {
	Name             string  `yaml:"name"`
	Integral         bool    `yaml:"integral"`
	PredictionWindow int     `yaml:"prediction_window"`
	Alpha            float64 `yaml:"alpha"`
	Theta            float64 `yaml:"theta"`
	Beta             float64 `yaml:"beta"`
	Randomized       bool    `yaml:"randomized"`
	UseApprox        bool    `yaml:"use_approx"`
	Gamma            float64 `yaml:"gamma"`
}

var validAlgorithms = map[string]bool{
	"brcp": true, "graph_search": true, "static_fractional": true, "static_integral": true,
	"lcp": true, "probabilistic": true, "rbg": true,
	"pobd": true, "dobd": true, "gobd": true, "robd": true,
	"rhc": true, "afhc": true, "lazy_budgeting": true, "randomized": true,
}

// Validate checks Algorithm's fields, including that Name names one of
// the algorithms this repo implements (spec.md §2's representative
// online algorithms plus the offline solver family).
func (a Algorithm) Validate() error {
	if !validAlgorithms[a.Name] {
		return fmt.Errorf("algorithm.name %q is not a recognized algorithm", a.Name)
	}
	if a.PredictionWindow < 0 {
		return fmt.Errorf("algorithm.prediction_window must be >= 0, got %d", a.PredictionWindow)
	}
	if a.Alpha < 0 {
		return fmt.Errorf("algorithm.alpha must be >= 0, got %v", a.Alpha)
	}
	return nil
}

// Scenario is the top-level YAML document the CLI's `scosim run` command
// loads: a reproducibility seed, the data-center model/workload, and the
// algorithm to run against the resulting problem.
type Scenario struct {
	Seed       int64      `yaml:"seed"`
	DataCenter DataCenter `yaml:"data_center"`
	Algorithm  Algorithm  `yaml:"algorithm"`
}

// DefaultScenario returns a minimal, valid scenario: a single server
// cell, four time slots of load, and Lazy Capacity Provisioning —
// matching the teacher's DefaultVLLMEngineConfig pattern of a runnable
// config with no external input required.
func DefaultScenario() Scenario {
	return Scenario{
		Seed: 0,
		DataCenter: DataCenter{
			Delta: 1, Servers: 4, ProcessingTime: 0.1,
			EnergyPhiMin: 1, EnergyPhiMax: 10, EnergyPricePerWatt: 1,
			RevenueGamma: 1, RevenueDelta: 0,
			SwitchingEnergyCost: 1, SwitchingEpsilon: 1, SwitchingDelta: 0, SwitchingTau: 0, SwitchingRho: 0,
			Loads: []float64{1, 2, 1.5, 1},
		},
		Algorithm: Algorithm{Name: "lcp", PredictionWindow: 0, Alpha: 1, Theta: 1},
	}
}

// Validate checks the whole scenario. DataCenter always describes a
// single server type (D=1), so every algorithm this CLI supports,
// including the 1-D-only ones, is applicable.
func (s Scenario) Validate() error {
	if err := s.DataCenter.Validate(); err != nil {
		return fmt.Errorf("data_center: %w", err)
	}
	if err := s.Algorithm.Validate(); err != nil {
		return fmt.Errorf("algorithm: %w", err)
	}
	return nil
}

// Load reads and validates a Scenario from a YAML file.
func Load(path string) (Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario file: %w", err)
	}
	s := DefaultScenario()
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Scenario{}, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("invalid scenario: %w", err)
	}
	return s, nil
}

// BuildSSCOFloat builds the fractional SSCO problem instance this
// scenario's data-center and workload describe.
func (s Scenario) BuildSSCOFloat() problem.SSCO[float64] {
	return datacenter.ToSSCO[float64](s.DataCenter.Model(), s.DataCenter.LoadProfiles())
}

// BuildSSCOIntegral builds the integral SSCO problem instance this
// scenario's data-center and workload describe.
func (s Scenario) BuildSSCOIntegral() problem.SSCO[int64] {
	return datacenter.ToSSCO[int64](s.DataCenter.Model(), s.DataCenter.LoadProfiles())
}

// BuildSLOIntegral builds the integral Smoothed Load Optimization
// problem instance Lazy Budgeting runs against.
func (s Scenario) BuildSLOIntegral() (problem.SLO[int64], error) {
	return datacenter.ToSLO[int64](s.DataCenter.Model(), s.DataCenter.LoadProfiles())
}
