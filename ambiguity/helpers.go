// SPDX-License-Identifier: MIT
package ambiguity

import "gonum.org/v1/gonum/mat"

// newZeroDense allocates an n x m matrix of zeros; mat.NewDense(n, m, nil)
// already zero-initializes, this just names the intent at call sites.
func newZeroDense(n, m int) *mat.Dense {
	return mat.NewDense(n, m, nil)
}
