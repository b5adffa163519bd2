package scosim

import (
	"math/rand"
)

// maxSampleSize bounds the number of forecast samples drawn from a
// PredictedLoadProfile during apply-predicted-loads evaluation, keeping
// worst-case cost of a single hitting-cost call predictable (spec §9).
const maxSampleSize = 100

// LoadProfile is an ordered vector of e >= 1 non-negative reals: the
// amount of each job type arriving at one time slot.
type LoadProfile struct {
	vals []float64
}

// NewLoadProfile builds a LoadProfile from a raw slice.
func NewLoadProfile(vals []float64) LoadProfile {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	return LoadProfile{vals: cp}
}

// SingleLoadProfile builds a load profile with a single job type.
func SingleLoadProfile(v float64) LoadProfile { return LoadProfile{vals: []float64{v}} }

// E returns the number of job types.
func (l LoadProfile) E() int { return len(l.vals) }

// Get returns the load of job type i (0-indexed).
func (l LoadProfile) Get(i int) float64 { return l.vals[i] }

// Total sums load across all job types.
func (l LoadProfile) Total() float64 {
	var sum float64
	for _, v := range l.vals {
		sum += v
	}
	return sum
}

// ToSlice returns a defensive copy of the underlying values.
func (l LoadProfile) ToSlice() []float64 {
	cp := make([]float64, len(l.vals))
	copy(cp, l.vals)
	return cp
}

// PredictedLoadProfile is a matrix: for each of e job types, a sample of
// possible values representing a forecast distribution.
type PredictedLoadProfile struct {
	vals [][]float64
}

// NewPredictedLoadProfile builds a PredictedLoadProfile from raw samples,
// one slice of samples per job type.
func NewPredictedLoadProfile(vals [][]float64) PredictedLoadProfile {
	cp := make([][]float64, len(vals))
	for i, zs := range vals {
		cp[i] = append([]float64{}, zs...)
	}
	return PredictedLoadProfile{vals: cp}
}

func (p PredictedLoadProfile) smallestSampleSize() int {
	min := len(p.vals[0])
	for _, zs := range p.vals[1:] {
		if len(zs) < min {
			min = len(zs)
		}
	}
	return min
}

func (p PredictedLoadProfile) largestSampleSize() int {
	max := len(p.vals[0])
	for _, zs := range p.vals[1:] {
		if len(zs) > max {
			max = len(zs)
		}
	}
	return max
}

// SampleLoadProfiles draws a bounded, randomly chosen subset of the
// forecast samples and transposes them into concrete LoadProfiles, one
// per drawn sample. The sample size is min(smallest, maxSampleSize),
// where smallest is the fewest samples any job type has.
func (p PredictedLoadProfile) SampleLoadProfiles(rng *rand.Rand) []LoadProfile {
	sampleSize := p.smallestSampleSize()
	if sampleSize > maxSampleSize {
		sampleSize = maxSampleSize
	}

	e := len(p.vals)
	chosen := make([][]float64, e)
	for i, zs := range p.vals {
		perm := rng.Perm(len(zs))[:sampleSize]
		sample := make([]float64, sampleSize)
		for j, idx := range perm {
			sample[j] = zs[idx]
		}
		chosen[i] = sample
	}

	profiles := make([]LoadProfile, sampleSize)
	for s := 0; s < sampleSize; s++ {
		row := make([]float64, e)
		for i := 0; i < e; i++ {
			row[i] = chosen[i][s]
		}
		profiles[s] = NewLoadProfile(row)
	}
	return profiles
}

// LoadFractions is, for a fixed time slot, an assignment of each of the e
// job types to each of the d configuration cells (location x server-type).
// Stored flat at position k*e+i; the last cell (k = d-1) is computed
// implicitly from the others so that the fractions of job type i sum to
// lambda_i / total load whenever total load is positive.
type LoadFractions struct {
	zs   []float64
	d, e int
}

// NewLoadFractions wraps the (d-1)*e free solver variables produced by the
// inner load-fraction optimization (scosim/datacenter.OptimizeLoadFractions).
func NewLoadFractions(zs []float64, d, e int) LoadFractions {
	return LoadFractions{zs: zs, d: d, e: e}
}

// Get returns the load fraction for cell k (0-indexed) and job type i.
func (f LoadFractions) Get(k, i int, lambda LoadProfile) float64 {
	if k < f.d-1 {
		return f.zs[k*f.e+i]
	}
	total := lambda.Total()
	if total <= 0 {
		return 0
	}
	var sum float64
	for j := 0; j < k; j++ {
		sum += f.zs[j*f.e+i]
	}
	return lambda.Get(i)/total - sum
}

// SelectLoads returns, for cell k, the per-job-type load vector it must
// absorb.
func (f LoadFractions) SelectLoads(lambda LoadProfile, k int) LoadProfile {
	out := make([]float64, f.e)
	for i := 0; i < f.e; i++ {
		out[i] = lambda.Get(i) * f.Get(k, i, lambda)
	}
	return NewLoadProfile(out)
}
