package sumset

import (
	"errors"
	"fmt"

	"github.com/hupe1980/sumset/internal/engine"
)

var (
	// ErrOffsetOverflow is returned when the entry magnitudes produce an
	// offset space larger than the addressable bit-index range. It is a
	// configuration error, surfaced before any table row is built.
	ErrOffsetOverflow = errors.New("offset space exceeds addressable range")

	// ErrInvariant is returned when an internally computed bit index
	// escapes the offset space. It indicates a defect, not bad input.
	ErrInvariant = errors.New("internal index invariant violated")

	// ErrResultConsumed is returned when the terminal result of a
	// background run was already delivered by an earlier Poll or Wait.
	ErrResultConsumed = errors.New("terminal result already consumed")
)

// translateError maps internal engine errors onto the package's public
// sentinels. The original error stays reachable via errors.Unwrap.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var oe *engine.OverflowError
	if errors.As(err, &oe) {
		return fmt.Errorf("%w: %w", ErrOffsetOverflow, err)
	}

	var ie *engine.InvariantError
	if errors.As(err, &ie) {
		return fmt.Errorf("%w: %w", ErrInvariant, err)
	}

	return err
}
