package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrFormat,
		ErrMisplacedByteOrder,
		ErrInvalidRepeatCount,
		ErrUnknownTypeChar,
		ErrArityMismatch,
		ErrValueKindMismatch,
		ErrValueOutOfRange,
		ErrBufferTooSmall,
		ErrBufferTooShort,
		ErrCorruptPadding,
		ErrUndefinedSize,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				require.NotErrorIs(t, a, b)
			}
		}
	}
}

func TestWrappedMatching(t *testing.T) {
	err := fmt.Errorf("%w: %q at position 3: %w", ErrFormat, 'x', ErrUnknownTypeChar)

	require.True(t, errors.Is(err, ErrFormat))
	require.True(t, errors.Is(err, ErrUnknownTypeChar))
	require.False(t, errors.Is(err, ErrInvalidRepeatCount))
}
