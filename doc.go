// Package params provides a run-time parameter registry for programs that
// expose many tunable knobs: parameters are declared once with a typed
// compile-time default, optionally overridden from the command line, an
// INI-style parameter file, a TOML file, or environment variables, and then
// retrieved through typed accessors.
//
// The registry has a strict two-phase lifecycle. While registration is open,
// parameters may be declared (and hidden, or given a new default); resolution
// is rejected. Closing registration with EndRegistration eagerly resolves
// every registered parameter once, so malformed defaults or overrides are
// reported deterministically instead of at an arbitrary later Get call.
//
// Quick start:
//
//	var UpwindWeight = params.Param[float64]{Name: "UpwindWeight", Default: 1.0}
//	var Verbose = params.Param[bool]{Name: "Verbose", Default: false}
//
//	cfg := params.New()
//	params.Register(cfg, UpwindWeight, "Relative weight of the upwind node")
//	params.Register(cfg, Verbose, "Print progress information")
//
//	if msg := cfg.ParseCommandLine(os.Args[1:], params.CLIOptions{
//		HelpPreamble: "mysim [options]",
//	}); msg != "" {
//		if msg == params.HelpCalled {
//			os.Exit(0)
//		}
//		log.Fatal(msg)
//	}
//	if err := cfg.EndRegistration(); err != nil {
//		log.Fatal(err)
//	}
//
//	w, _ := params.Get(cfg, UpwindWeight)
//
// Parameter names are PascalCase identifiers; on the command line they are
// spelled in kebab-case ("UpwindWeight" becomes "--upwind-weight"). Values
// are stored as text and coerced to the caller's compile-time type at
// retrieval, so the override store is an untyped overlay on top of the typed
// defaults.
//
// All operations are safe for concurrent use, but the intended pattern is
// sequential: register, load sources, close registration, then read.
package params
