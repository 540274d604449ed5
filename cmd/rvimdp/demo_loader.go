// SPDX-License-Identifier: MIT
package main

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/rvimdp/ambiguity"
	"github.com/katalvlaran/rvimdp/model"
)

// demoLoader is an in-process stand-in for the ports.ModelLoader an
// external PRISM/bmdp-tool/NetCDF adapter would implement. It always
// returns spec.md scenario S1's 3-state IMC (state 2 absorbing,
// reachability target), so cmd/rvimdp has something runnable without
// this module taking on any file-parsing responsibility.
type demoLoader struct{}

func (demoLoader) Load() (marginals []model.Marginal, stateShapes, actionShapes []int, initial, terminal []int, err error) {
	lo := mat.NewDense(3, 3, []float64{
		0, .5, 0,
		.1, .3, 0,
		.2, .1, 1,
	})
	up := mat.NewDense(3, 3, []float64{
		.5, .7, 0,
		.6, .5, 0,
		.7, .3, 1,
	})
	set, err := ambiguity.NewDense(lo, up)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}

	return []model.Marginal{{Gamma: set}}, []int{3}, []int{1}, []int{0}, []int{2}, nil
}
