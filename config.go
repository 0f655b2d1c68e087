// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package icepll

import (
	"math/big"
)

// defaultTolerance is the allowed relative mismatch between the requested
// and the achieved output frequency when the request does not set one.
var defaultTolerance = big.NewRat(1, 100)

// A Request describes one PLL configuration problem.
type Request struct {
	// FIn is the reference input frequency, 10 to 133 MHz.
	FIn Freq
	// FOut is the requested output frequency, 16 to 275 MHz.
	FOut Freq
	// Feedback forces a feedback topology. Leave as FeedbackAuto to let
	// the solver arbitrate between SIMPLE and DELAY.
	Feedback FeedbackPath
	// ShiftregDivMode selects the shift register division factor; only
	// legal together with PHASE_AND_DELAY feedback.
	ShiftregDivMode ShiftregDivMode
	// OutputSelect picks the output tap. The shift register taps require
	// PHASE_AND_DELAY feedback and vice versa.
	OutputSelect OutputSelect
	// FDAFeedback and FDARelative, when non-nil, switch the corresponding
	// delay adjustment to DYNAMIC with the given 4-bit seed value.
	FDAFeedback *uint8
	FDARelative *uint8
	// EnableIceGate requests the latched (gated) clock output.
	EnableIceGate bool
	// WithLock requests the lock status output.
	WithLock bool
	// Tolerance is the allowed relative error |fout-FOut|/FOut. Nil means
	// 1/100. It is rational so the accept/reject comparison stays exact.
	Tolerance *big.Rat
}

// A Config is the packed PLL configuration produced by Configure. Field
// widths match the hardware parameter widths; the trailing frequencies are
// the solved candidate's derived values, kept for diagnostics and reports.
// A Config is produced once and never modified.
type Config struct {
	DivR                        uint8 // 4 bits
	DivF                        uint8 // 7 bits
	DivQ                        uint8 // 3 bits
	FilterRange                 uint8 // 3 bits
	FeedbackPath                FeedbackPath
	DelayAdjustmentModeFeedback DelayAdjMode
	DelayAdjustmentModeRelative DelayAdjMode
	FDAFeedback                 uint8 // 4 bits, zero unless dynamic
	FDARelative                 uint8 // 4 bits, zero unless dynamic
	ShiftregDivMode             uint8 // 1 bit
	PlloutSelect                OutputSelect
	EnableIceGate               bool
	WithLock                    bool

	FIn           Freq
	FOutRequested Freq
	FOut          Freq // achieved
	FVCO          Freq
	FDiv          Freq
}

// Configure checks the request, runs the divider search and packs the
// result. It fails with a *RequestError before searching when the request
// is inconsistent or out of absolute range, and with a *NoSolutionError
// when the search finds nothing within tolerance.
func Configure(r *Request) (*Config, error) {
	if r.Feedback == FeedbackPhaseAndDelay && !r.OutputSelect.isShiftreg() {
		return nil, requestErrorf("PHASE_AND_DELAY feedback requires a SHIFTREG output select, got %v", r.OutputSelect)
	}
	if r.OutputSelect.isShiftreg() && r.Feedback != FeedbackPhaseAndDelay {
		return nil, requestErrorf("output select %v requires PHASE_AND_DELAY feedback, got %v", r.OutputSelect, r.Feedback)
	}
	if r.ShiftregDivMode != ShiftregNone && r.Feedback != FeedbackPhaseAndDelay {
		return nil, requestErrorf("shift register divide mode %v requires PHASE_AND_DELAY feedback, got %v", r.ShiftregDivMode, r.Feedback)
	}
	if r.FDAFeedback != nil && *r.FDAFeedback > 15 {
		return nil, requestErrorf("FDA_FEEDBACK value %d does not fit in 4 bits", *r.FDAFeedback)
	}
	if r.FDARelative != nil && *r.FDARelative > 15 {
		return nil, requestErrorf("FDA_RELATIVE value %d does not fit in 4 bits", *r.FDARelative)
	}

	best, err := Solve(r.FIn, r.FOut, r.Feedback, r.ShiftregDivMode.Factor())
	if err != nil {
		return nil, err
	}
	if best == nil {
		return nil, &NoSolutionError{FIn: r.FIn, FOut: r.FOut}
	}

	tol := r.Tolerance
	if tol == nil {
		tol = defaultTolerance
	}
	relErr := best.FOut().Sub(r.FOut).Abs().Div(r.FOut)
	if relErr.Cmp(tol) > 0 {
		return nil, &NoSolutionError{FIn: r.FIn, FOut: r.FOut, Best: best, RelErr: relErr}
	}

	feedback := r.Feedback
	if feedback == FeedbackAuto {
		feedback = best.Feedback
	}
	cfg := &Config{
		DivR:         uint8(best.DivR),
		DivF:         uint8(best.DivF),
		DivQ:         uint8(best.DivQ),
		FilterRange:  FilterRange(best.FDiv()),
		FeedbackPath: feedback,

		ShiftregDivMode: r.ShiftregDivMode.Bit(),
		PlloutSelect:    r.OutputSelect,
		EnableIceGate:   r.EnableIceGate,
		WithLock:        r.WithLock,

		FIn:           r.FIn,
		FOutRequested: r.FOut,
		FOut:          best.FOut(),
		FVCO:          best.FVCO(),
		FDiv:          best.FDiv(),
	}
	if r.FDAFeedback != nil {
		cfg.DelayAdjustmentModeFeedback = DelayDynamic
		cfg.FDAFeedback = *r.FDAFeedback
	}
	if r.FDARelative != nil {
		cfg.DelayAdjustmentModeRelative = DelayDynamic
		cfg.FDARelative = *r.FDARelative
	}
	return cfg, nil
}

// filterRangeBins maps fdiv to the analog loop filter range code: first
// threshold exceeding fdiv wins, ascending.
var filterRangeBins = []struct {
	below Freq
	code  uint8
}{
	{MHz(17), 1},
	{MHz(26), 2},
	{MHz(44), 3},
	{MHz(66), 4},
	{MHz(101), 5},
}

// FilterRange returns the 3-bit analog loop filter range code for a post
// input-divider frequency.
func FilterRange(fdiv Freq) uint8 {
	for _, b := range filterRangeBins {
		if fdiv.Less(b.below) {
			return b.code
		}
	}
	return 6
}
