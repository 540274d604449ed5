// SPDX-License-Identifier: MIT

// Command rvimdp is a thin CLI wiring the (direction, reduction,
// property, horizon/epsilon, input_path, output_path) flag tuple from
// spec section 6 straight into solve.Options. It does not parse any
// external model format (non-goal): input_path is accepted but unused
// (a non-empty value only logs a warning),
// and the model itself comes from an in-process ports.ModelLoader
// (demoLoader, below) standing in for a real PRISM/bmdp-tool/NetCDF
// adapter.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/katalvlaran/rvimdp/model"
	"github.com/katalvlaran/rvimdp/ports"
	"github.com/katalvlaran/rvimdp/property"
	"github.com/katalvlaran/rvimdp/rvtypes"
	"github.com/katalvlaran/rvimdp/solve"
)

func main() {
	direction := flag.String("direction", "lower", "robust bound direction: lower (pessimistic) or upper (optimistic)")
	reduction := flag.String("reduction", "max", "action reduction: max or min")
	propKind := flag.String("property", "reachability", "property kind: reachability, safety, reach_avoid, exit_time, exact_time")
	horizon := flag.Int("horizon", 10, "finite-horizon step count (reachability/safety/reach_avoid/exit_time/exact_time)")
	epsilon := flag.Float64("epsilon", 0, "infinite-horizon convergence threshold; 0 disables infinite-horizon mode")
	inputPath := flag.String("input_path", "", "external model file (unused: no format parser is implemented, spec section 6 non-goal)")
	outputPath := flag.String("output_path", "", "write the JSON solution here instead of stdout")
	flag.Parse()

	if *inputPath != "" {
		slog.Warn("rvimdp: input_path is accepted but not read; this build only solves its in-process demo model", "input_path", *inputPath)
	}

	if err := run(*direction, *reduction, *propKind, *horizon, *epsilon, *outputPath); err != nil {
		slog.Error("rvimdp: run failed", "error", err)
		os.Exit(1)
	}
}

func run(directionFlag, reductionFlag, propKindFlag string, horizon int, epsilon float64, outputPath string) error {
	dir, err := parseDirection(directionFlag)
	if err != nil {
		return err
	}
	red, err := parseReduction(reductionFlag)
	if err != nil {
		return err
	}

	var loader ports.ModelLoader = demoLoader{}
	marginals, stateShapes, actionShapes, _, terminal, err := loader.Load()
	if err != nil {
		return fmt.Errorf("rvimdp: loading model: %w", err)
	}
	if len(stateShapes) != 1 || len(actionShapes) != 1 {
		return fmt.Errorf("rvimdp: this build only drives non-factored models (1 state variable, 1 action variable); got %d/%d", len(stateShapes), len(actionShapes))
	}

	m, err := model.NewIMC(marginals[0].Gamma)
	if err != nil {
		return fmt.Errorf("rvimdp: building model: %w", err)
	}

	n := stateShapes[0]
	terminalMask := make([]bool, n)
	for _, s := range terminal {
		terminalMask[s] = true
	}

	prop, err := buildProperty(propKindFlag, n, terminalMask, horizon, epsilon)
	if err != nil {
		return err
	}

	V, iterations, residual, _, err := solve.Run(context.Background(), m, solve.Options{
		Direction: dir,
		Reduction: red,
		Property:  prop,
		Epsilon:   epsilon,
	})
	if err != nil {
		return fmt.Errorf("rvimdp: solving: %w", err)
	}

	solution := ports.Solution{
		ValueFunction: V,
		NumIterations: iterations,
		Residual:      residual,
	}

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("rvimdp: opening output_path: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(solution)
}

func parseDirection(s string) (rvtypes.Direction, error) {
	switch s {
	case "lower":
		return rvtypes.Lower, nil
	case "upper":
		return rvtypes.Upper, nil
	default:
		return 0, fmt.Errorf("rvimdp: unknown -direction %q (want lower or upper)", s)
	}
}

func parseReduction(s string) (rvtypes.Reduction, error) {
	switch s {
	case "max":
		return rvtypes.Maximize, nil
	case "min":
		return rvtypes.Minimize, nil
	default:
		return 0, fmt.Errorf("rvimdp: unknown -reduction %q (want max or min)", s)
	}
}

func buildProperty(kind string, n int, terminalMask []bool, horizon int, epsilon float64) (property.Property, error) {
	var term property.Terminator = property.FiniteHorizon{Horizon: horizon}
	if epsilon > 0 {
		term = property.InfiniteHorizon{Epsilon: epsilon}
	}

	switch kind {
	case "reachability":
		return property.NewReachability(term, n, terminalMask), nil
	case "safety":
		return property.NewSafety(term, n, terminalMask), nil
	case "reach_avoid":
		return property.NewReachAvoid(term, n, terminalMask, make([]bool, n)), nil
	case "exit_time":
		return property.NewExitTime(term, n, terminalMask), nil
	case "exact_time":
		return property.NewExactTime(horizon, nil), nil
	default:
		return nil, fmt.Errorf("rvimdp: unknown -property %q", kind)
	}
}
