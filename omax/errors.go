// SPDX-License-Identifier: MIT
package omax

import (
	"fmt"

	"github.com/katalvlaran/rvimdp/rverrors"
)

func shapef(format string, args ...any) error {
	return fmt.Errorf("omax: %s: %w", fmt.Sprintf(format, args...), rverrors.ErrShapeMismatch)
}
