// Demo of the params registry: a small simulation driver that declares a few
// knobs, loads overrides from a parameter file and the command line, and
// dumps the effective configuration.
//
// Try:
//
//	go run ./example --help
//	go run ./example --upwind-weight=0.5 --end-time=250 --verbose=1
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"params"
)

var (
	upwindWeight = params.Param[float64]{Name: "UpwindWeight", Default: 1.0}
	endTime      = params.Param[float64]{Name: "EndTime", Default: 100.0}
	maxStepCount = params.Param[int]{Name: "MaxTimeStepCount", Default: 10000}
	gridFile     = params.Param[string]{Name: "GridFile", Default: "grid.dgf"}
	verbose      = params.Param[bool]{Name: "Verbose", Default: false}
)

const preamble = "simdriver [options]\n\nRuns the demo simulation with the given parameters."

func main() {
	cfg := params.New()

	fail := func(err error) {
		if err != nil {
			log.Fatal(err)
		}
	}
	fail(params.Register(cfg, upwindWeight, "Relative weight of the upwind node"))
	fail(params.Register(cfg, endTime, "Time at which the simulation stops [s]"))
	fail(params.Register(cfg, maxStepCount, "Maximum number of time steps"))
	fail(params.Register(cfg, gridFile, "File holding the grid definition"))
	fail(params.Register(cfg, verbose, "Print progress information"))

	// Optional parameter file, then command-line overrides on top.
	if err := cfg.ParseFile("simdriver.params", true); err != nil && !errors.Is(err, params.ErrConfigNotFound) {
		log.Fatal(err)
	}
	if msg := cfg.ParseCommandLine(os.Args[1:], params.CLIOptions{HelpPreamble: preamble}); msg != "" {
		if msg == params.HelpCalled {
			os.Exit(0)
		}
		log.Fatal(msg)
	}

	fail(cfg.EndRegistration())

	w, err := params.Get(cfg, upwindWeight)
	fail(err)
	t, err := params.Get(cfg, endTime)
	fail(err)
	v, err := params.Get(cfg, verbose)
	fail(err)

	if v {
		fmt.Printf("running until t=%g with upwind weight %g\n", t, w)
	}

	fmt.Println("# effective configuration")
	cfg.PrintValues(os.Stdout)
	cfg.PrintUnused(os.Stderr)
}
