package scosim

// Bound is an inclusive per-dimension box constraint on a configuration,
// [Lo, Hi]. SSCO/SBLO/SLO use [0, M_k]; SCO allows arbitrary [L_k, U_k].
type Bound struct {
	Lo, Hi float64
}
