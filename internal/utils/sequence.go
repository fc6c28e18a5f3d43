package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// SequenceWidth is the zero-padded width of the numeric suffix in display
// numbers such as INS-000042.
const SequenceWidth = 6

// NextSequence derives the next display number for a prefix from the last
// persisted one. An empty last value starts the sequence at 1. The caller is
// responsible for enforcing uniqueness at the write boundary and re-invoking
// with a fresh last value on conflict.
func NextSequence(prefix, last string) (string, error) {
	if last == "" {
		return fmt.Sprintf("%s-%0*d", prefix, SequenceWidth, 1), nil
	}

	suffix, ok := strings.CutPrefix(last, prefix+"-")
	if !ok {
		return "", fmt.Errorf("sequence value %q does not match prefix %q", last, prefix)
	}

	n, err := strconv.Atoi(suffix)
	if err != nil {
		return "", fmt.Errorf("sequence value %q has non-numeric suffix: %w", last, err)
	}

	return fmt.Sprintf("%s-%0*d", prefix, SequenceWidth, n+1), nil
}
