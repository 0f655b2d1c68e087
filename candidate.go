// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package icepll

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A FeedbackPath selects the internal routing of the PLL feedback signal,
// which changes how fvco and fout relate to the divider values.
type FeedbackPath int

// Feedback path values. FeedbackAuto is not a hardware topology: it asks
// the solver to pick between SIMPLE and DELAY on its own.
const (
	FeedbackAuto FeedbackPath = iota
	FeedbackSimple
	FeedbackDelay
	FeedbackPhaseAndDelay
	FeedbackExternal
)

var feedbackNames = map[FeedbackPath]string{
	FeedbackAuto:          "AUTO",
	FeedbackSimple:        "SIMPLE",
	FeedbackDelay:         "DELAY",
	FeedbackPhaseAndDelay: "PHASE_AND_DELAY",
	FeedbackExternal:      "EXTERNAL",
}

func (f FeedbackPath) String() string {
	if n, ok := feedbackNames[f]; ok {
		return n
	}
	return "FeedbackPath(" + strconv.Itoa(int(f)) + ")"
}

// ParseFeedbackPath parses a feedback path name (case insensitive).
func ParseFeedbackPath(s string) (FeedbackPath, error) {
	for v, n := range feedbackNames {
		if strings.EqualFold(s, n) {
			return v, nil
		}
	}
	return FeedbackAuto, errors.Errorf("unknown feedback path %q", s)
}

// A ShiftregDivMode selects the shift register divider factor. It is only
// meaningful under PHASE_AND_DELAY feedback.
type ShiftregDivMode int

// Shift register divider modes.
const (
	ShiftregNone ShiftregDivMode = iota // unset
	ShiftregDiv4                        // divide by 4
	ShiftregDiv7                        // divide by 7
)

// Factor returns the numeric division factor for m. The unset mode maps to
// the hardware default of 4.
func (m ShiftregDivMode) Factor() int {
	if m == ShiftregDiv7 {
		return 7
	}
	return 4
}

// Bit returns the SHIFTREG_DIV_MODE register bit for m.
func (m ShiftregDivMode) Bit() uint8 {
	if m == ShiftregDiv7 {
		return 1
	}
	return 0
}

func (m ShiftregDivMode) String() string {
	switch m {
	case ShiftregDiv4:
		return "DIV_4"
	case ShiftregDiv7:
		return "DIV_7"
	}
	return "NONE"
}

// An OutputSelect picks which internal tap drives the PLL output.
type OutputSelect int

// Output select values.
const (
	OutGenClk OutputSelect = iota
	OutGenClkHalf
	OutShiftreg90
	OutShiftreg0
)

var outputSelectNames = map[OutputSelect]string{
	OutGenClk:     "GENCLK",
	OutGenClkHalf: "GENCLK_HALF",
	OutShiftreg90: "SHIFTREG_90deg",
	OutShiftreg0:  "SHIFTREG_0deg",
}

func (o OutputSelect) String() string {
	if n, ok := outputSelectNames[o]; ok {
		return n
	}
	return "OutputSelect(" + strconv.Itoa(int(o)) + ")"
}

// ParseOutputSelect parses an output select name (case insensitive).
func ParseOutputSelect(s string) (OutputSelect, error) {
	for v, n := range outputSelectNames {
		if strings.EqualFold(s, n) {
			return v, nil
		}
	}
	return OutGenClk, errors.Errorf("unknown output select %q", s)
}

// isShiftreg reports whether o taps the shift register, which requires
// PHASE_AND_DELAY feedback.
func (o OutputSelect) isShiftreg() bool {
	return o == OutShiftreg90 || o == OutShiftreg0
}

// A DelayAdjMode selects fixed or dynamic fine delay adjustment.
type DelayAdjMode int

// Delay adjustment modes.
const (
	DelayFixed DelayAdjMode = iota
	DelayDynamic
)

func (m DelayAdjMode) String() string {
	if m == DelayDynamic {
		return "DYNAMIC"
	}
	return "FIXED"
}

// Hardware frequency windows, inclusive on both ends.
var (
	finMin  = MHz(10)
	finMax  = MHz(133)
	fdivMin = MHz(10)
	fdivMax = MHz(133)
	fvcoMin = MHz(533)
	fvcoMax = MHz(1066)
	foutMin = MHz(16)
	foutMax = MHz(275)
)

// A Candidate is one divider assignment produced by the search. The derived
// frequencies are computed on demand from the input frequency captured at
// construction; a Candidate is never modified after it is built.
type Candidate struct {
	fin         Freq
	DivR        int // reference divider, 0..15
	DivF        int // feedback divider, 0..127 (0..63 unless SIMPLE)
	DivQ        int // VCO post divider exponent, 0..7
	Feedback    FeedbackPath
	ShiftregDiv int // 1, 4 or 7
}

// NewCandidate builds a candidate for the given input frequency and divider
// assignment. Divider ranges are the caller's responsibility.
func NewCandidate(fin Freq, divr, divf, divq int, feedback FeedbackPath, shiftregDiv int) Candidate {
	return Candidate{fin: fin, DivR: divr, DivF: divf, DivQ: divq, Feedback: feedback, ShiftregDiv: shiftregDiv}
}

// FDiv returns the post input-divider frequency fin / (divr+1).
func (c Candidate) FDiv() Freq {
	return c.fin.DivInt(int64(c.DivR) + 1)
}

// FVCO returns the voltage controlled oscillator frequency. Under SIMPLE
// feedback the VCO runs ahead of the post divider; under every other
// topology the post divider (and under PHASE_AND_DELAY the shift register
// divider as well) sits inside the feedback loop and multiplies the VCO up.
func (c Candidate) FVCO() Freq {
	f := c.FDiv().MulInt(int64(c.DivF) + 1)
	if c.Feedback == FeedbackSimple {
		return f
	}
	f = f.MulInt(1 << uint(c.DivQ))
	if c.Feedback == FeedbackPhaseAndDelay {
		f = f.MulInt(int64(c.ShiftregDiv))
	}
	return f
}

// FOut returns the synthesized output frequency. For every topology other
// than SIMPLE the post divider cancels out of the output: fout reduces to
// fdiv * (divf+1) and divq only moves fvco for range validation.
func (c Candidate) FOut() Freq {
	f := c.FVCO().DivInt(1 << uint(c.DivQ))
	if c.Feedback == FeedbackPhaseAndDelay {
		f = f.DivInt(int64(c.ShiftregDiv))
	}
	return f
}

// Valid reports whether the candidate's derived frequencies all sit inside
// the hardware windows.
func (c Candidate) Valid() bool {
	fdiv, fvco, fout := c.FDiv(), c.FVCO(), c.FOut()
	return fdiv.Cmp(fdivMin) >= 0 && fdiv.Cmp(fdivMax) <= 0 &&
		fvco.Cmp(fvcoMin) >= 0 && fvco.Cmp(fvcoMax) <= 0 &&
		fout.Cmp(foutMin) >= 0 && fout.Cmp(foutMax) <= 0
}

func (c Candidate) String() string {
	return c.Feedback.String() +
		" DIVR=" + strconv.Itoa(c.DivR) +
		" DIVF=" + strconv.Itoa(c.DivF) +
		" DIVQ=" + strconv.Itoa(c.DivQ) +
		" fdiv=" + c.FDiv().String() +
		" fvco=" + c.FVCO().String() +
		" fout=" + c.FOut().String()
}
