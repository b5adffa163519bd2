package datacenter

// MinimalDetectableDelay is revenue-loss parameters for one job type: loss
// is linear in how far average delay exceeds the minimal detectable delay
// Delta, scaled by Gamma.
type MinimalDetectableDelay struct {
	Gamma float64 // revenue loss factor, >= 0
	Delta float64 // minimal detectable delay, >= 0
}

// RevenueLossModel maps each job type (by key) to its revenue-loss
// parameters. Grounded on
// original_source/implementation/src/model/data_center/models/revenue_loss.rs
// (read in full).
type RevenueLossModel struct {
	models map[string]MinimalDetectableDelay
}

// NewRevenueLossModel builds a model from a per-job-type parameter map.
func NewRevenueLossModel(models map[string]MinimalDetectableDelay) RevenueLossModel {
	return RevenueLossModel{models: models}
}

// Loss computes the revenue loss incurred when jobs of jobType experience
// average delay during time slot t: gamma * pos(delay - delta).
func (m RevenueLossModel) Loss(_ int, jt JobType, delay float64) float64 {
	p := m.models[jt.Key]
	return p.Gamma * pos(delay-p.Delta)
}
