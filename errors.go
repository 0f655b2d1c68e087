package icepll

import (
	"fmt"
	"math/big"
)

// A RequestError reports a request that can never be satisfied regardless
// of the search outcome: a frequency outside the absolute hardware window,
// or an inconsistent combination of feedback path, output select and shift
// register mode. It is returned before any search runs.
type RequestError struct {
	Reason string
}

func (e *RequestError) Error() string {
	return "invalid PLL request: " + e.Reason
}

func requestErrorf(format string, args ...interface{}) error {
	return &RequestError{Reason: fmt.Sprintf(format, args...)}
}

// A NoSolutionError reports that the exhaustive divider search found no
// acceptable configuration: either no divider combination satisfies the
// frequency windows at all, or the best one misses the requested output
// frequency by more than the allowed tolerance. Best and RelErr are set in
// the latter case so the failing request can be diagnosed.
type NoSolutionError struct {
	FIn    Freq
	FOut   Freq
	Best   *Candidate // best candidate found, nil if none was valid
	RelErr *big.Rat   // |best.FOut - FOut| / FOut, nil if Best is nil
}

func (e *NoSolutionError) Error() string {
	if e.Best == nil {
		return fmt.Sprintf("no valid PLL configuration for input %v, output %v", e.FIn, e.FOut)
	}
	return fmt.Sprintf("no PLL configuration within tolerance for input %v, output %v: best %v (relative error %s)",
		e.FIn, e.FOut, e.Best, e.RelErr.FloatString(6))
}
