package datacenter

import "github.com/jonhue/scosim/errs"

// AverageDelay computes the mean per-job delay on a server handling
// numberOfJobs jobs per slot of length delta, each with mean duration
// meanJobDuration, under an M/GI/1 processor-sharing queue: every job
// present shares the server equally, so its expected sojourn time is its
// own service time inflated by 1/(1-rho), rho = (numberOfJobs *
// meanJobDuration) / delta being the server's utilization. Grounded on
// spec.md §4.2's closed-form description (no dedicated source file was
// retrieved for this sub-model; see DESIGN.md's dropped-dependency entry
// on the queueing-delay collaborator).
func AverageDelay(delta, numberOfJobs, meanJobDuration float64) (float64, error) {
	if numberOfJobs <= 0 || meanJobDuration <= 0 {
		return 0, nil
	}
	rho := numberOfJobs * meanJobDuration / delta
	if rho >= 1 {
		return 0, &errs.InfiniteDelay{ArrivalRate: numberOfJobs / delta, ServiceRate: 1 / meanJobDuration}
	}
	return meanJobDuration / (1 - rho), nil
}
