// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/offline/convexprog"
	"github.com/jonhue/scosim/offline/multidim"
	"github.com/jonhue/scosim/offline/unidim"
	"github.com/jonhue/scosim/online"
	"github.com/jonhue/scosim/online/budgeting"
	"github.com/jonhue/scosim/online/horizon"
	"github.com/jonhue/scosim/online/lcp"
	"github.com/jonhue/scosim/online/obd"
	"github.com/jonhue/scosim/online/probabilistic"
	"github.com/jonhue/scosim/online/randomized"
	"github.com/jonhue/scosim/online/rbg"
	"github.com/jonhue/scosim/problem"
	"github.com/jonhue/scosim/rng"
	"github.com/jonhue/scosim/scenario"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "scosim",
	Short: "Run online/offline algorithms for Smoothed Convex Optimization with switching costs",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load a scenario and run its configured algorithm",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		s := scenario.DefaultScenario()
		if configPath != "" {
			s, err = scenario.Load(configPath)
			if err != nil {
				return err
			}
		}
		logrus.Infof("running %q over %d time slots (seed=%d)", s.Algorithm.Name, len(s.DataCenter.Loads), s.Seed)

		return runScenario(s)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "path to a scenario YAML file (defaults to a minimal built-in scenario)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
}

// defaultH is the squared-Euclidean mirror map every OBD variant uses
// absent a domain-specific distance-generating function: 1-strongly
// convex and 1-smooth, so its Bregman projection degenerates to ordinary
// Euclidean projection onto the hitting cost's sublevel set.
func defaultH(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return sum / 2
}

// runScenario dispatches on the scenario's configured algorithm, runs it
// to completion over the scenario's load horizon, and prints the
// resulting schedule and objective value.
func runScenario(s scenario.Scenario) error {
	a := s.Algorithm
	tEnd := len(s.DataCenter.Loads)
	r := rng.NewPartitionedRNG(rng.NewSimulationKey(s.Seed))

	alpha := a.Alpha
	if alpha == 0 {
		alpha = 1
	}

	switch a.Name {
	case "brcp":
		p := s.BuildSSCOFloat()
		result, err := unidim.BRCP(p, alpha)
		if err != nil {
			return err
		}
		return printResult(p, result.Xs)

	case "graph_search":
		p := s.BuildSSCOIntegral()
		var path multidim.Path
		var err error
		if a.UseApprox {
			path, err = multidim.ApproxGraphSearch(p, false, a.Gamma)
		} else {
			path, err = multidim.OptimalGraphSearch(p, false)
		}
		if err != nil {
			return err
		}
		return printResult(p, path.Xs)

	case "static_fractional":
		p := s.BuildSSCOFloat()
		xs, err := multidim.StaticFractional(p, alpha)
		if err != nil {
			return err
		}
		return printResult(p, xs)

	case "static_integral":
		p := s.BuildSSCOIntegral()
		xs, err := multidim.StaticIntegral(p)
		if err != nil {
			return err
		}
		return printResult(p, xs)

	case "convexprog":
		p := s.BuildSSCOFloat().ToSCO()
		opts := convexprog.DefaultOptions()
		opts.Alpha = alpha
		xs, err := convexprog.Solve(p, opts)
		if err != nil {
			return err
		}
		return printResult(p, xs)

	case "lcp":
		if a.Integral {
			p := s.BuildSSCOIntegral()
			o := problem.NewOnline[int64](p, a.PredictionWindow)
			xs, _, err := online.OfflineStream(lcp.Integral, &o, []lcp.Memory[int64]{}, struct{}{}, tEnd)
			if err != nil {
				return err
			}
			return printResult(o.P, xs)
		}
		p := s.BuildSSCOFloat()
		o := problem.NewOnline[float64](p, a.PredictionWindow)
		xs, _, err := online.OfflineStream(lcp.Fractional, &o, []lcp.Memory[float64]{}, struct{}{}, tEnd)
		if err != nil {
			return err
		}
		return printResult(o.P, xs)

	case "probabilistic":
		p := s.BuildSSCOFloat()
		o := problem.NewOnline[float64](p, a.PredictionWindow)
		opts := probabilistic.Options{Breakpoints: scosim.EmptyBreakpoints()}
		xs, _, err := online.OfflineStream(probabilistic.Probabilistic, &o, probabilistic.DefaultMemory(), opts, tEnd)
		if err != nil {
			return err
		}
		return printResult(o.P, xs)

	case "rbg":
		p := s.BuildSSCOFloat().ToSCO()
		o := problem.NewOnline[float64](p, a.PredictionWindow)
		opts := rbg.Options{Theta: a.Theta, RNG: r}
		xs, _, err := online.OfflineStream(rbg.RBG, &o, rbg.Memory(0), opts, tEnd)
		if err != nil {
			return err
		}
		return printResult(o.P, xs)

	case "pobd":
		p := s.BuildSSCOFloat()
		o := problem.NewOnline[float64](p, 0)
		opts := obd.PrimalOptions{Beta: a.Beta, H: defaultH}
		xs, _, err := online.OfflineStream(obd.Primal, &o, struct{}{}, opts, tEnd)
		if err != nil {
			return err
		}
		return printResult(o.P, xs)

	case "dobd":
		p := s.BuildSSCOFloat()
		o := problem.NewOnline[float64](p, 0)
		opts := obd.DualOptions{Eta: a.Beta, H: defaultH}
		xs, _, err := online.OfflineStream(obd.Dual, &o, struct{}{}, opts, tEnd)
		if err != nil {
			return err
		}
		return printResult(o.P, xs)

	case "gobd":
		p := s.BuildSSCOFloat()
		o := problem.NewOnline[float64](p, 0)
		mu := a.Theta
		if mu == 0 {
			mu = 1
		}
		opts := obd.GreedyOptions{M: alpha, Mu: mu, Gamma: a.Beta, H: defaultH}
		xs, _, err := online.OfflineStream(obd.Greedy, &o, struct{}{}, opts, tEnd)
		if err != nil {
			return err
		}
		return printResult(o.P, xs)

	case "robd":
		p := s.BuildSSCOFloat()
		o := problem.NewOnline[float64](p, 0)
		opts := obd.RegularizedOptions{M: alpha, Alpha: a.Theta, Beta: a.Beta}
		xs, _, err := online.OfflineStream(obd.Regularized, &o, struct{}{}, opts, tEnd)
		if err != nil {
			return err
		}
		return printResult(o.P, xs)

	case "rhc":
		p := s.BuildSSCOFloat()
		o := problem.NewOnline[float64](p, a.PredictionWindow)
		xs, _, err := online.OfflineStream(horizon.RHC, &o, struct{}{}, struct{}{}, tEnd)
		if err != nil {
			return err
		}
		return printResult(o.P, xs)

	case "afhc":
		p := s.BuildSSCOFloat()
		o := problem.NewOnline[float64](p, a.PredictionWindow)
		xs, _, err := online.OfflineStream(horizon.AFHC, &o, struct{}{}, struct{}{}, tEnd)
		if err != nil {
			return err
		}
		return printResult(o.P, xs)

	case "lazy_budgeting":
		p, err := s.BuildSLOIntegral()
		if err != nil {
			return err
		}
		o := problem.NewOnline[int64](p, 0)
		opts := budgeting.Options{Randomized: a.Randomized}
		xs, _, err := online.OfflineStream(budgeting.LB, &o, budgeting.DefaultMemory(p, r), opts, tEnd)
		if err != nil {
			return err
		}
		return printResult(o.P, xs)

	case "randomized":
		p := s.BuildSSCOIntegral()
		o := problem.NewOnline[int64](p, 0)
		opts := randomized.Options{Relaxation: s.BuildSSCOFloat(), RNG: r}
		xs, _, err := online.OfflineStream(randomized.Randomized, &o, randomized.DefaultMemory(), opts, tEnd)
		if err != nil {
			return err
		}
		return printResult(o.P, xs)

	default:
		return fmt.Errorf("unrecognized algorithm %q", a.Name)
	}
}

// printResult reports p's objective value and the per-slot schedule xs
// decided against it.
func printResult[T scosim.Number, P problem.Problem[T]](p P, xs scosim.Schedule[T]) error {
	x0 := make([]T, p.Dim())
	cost := problem.Objective(p, scosim.NewConfig(x0), xs, false)
	fmt.Printf("objective: %.6f\n", cost)
	for t := 1; t <= xs.Len(); t++ {
		fmt.Printf("  t=%d: %v\n", t, xs.At(t).ToSlice())
	}
	return nil
}
