// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package icepll

import (
	"math/big"
)

// Solve searches the divider space for the valid candidate whose output
// frequency is closest to foutTarget and returns it, or nil if no divider
// combination satisfies the hardware windows. shiftregDiv is the shift
// register division factor (1, 4 or 7) and only matters under
// PHASE_AND_DELAY feedback.
//
// With an explicit feedback path only that topology is searched. With
// FeedbackAuto only SIMPLE and DELAY are considered, and on an exact tie
// DELAY wins. The restriction to those two topologies mirrors the reference
// tool; see DESIGN.md.
//
// A non-nil error is returned only when fin or foutTarget sit outside the
// absolute hardware windows; an unsatisfiable but well-formed request
// yields (nil, nil).
func Solve(fin, foutTarget Freq, feedback FeedbackPath, shiftregDiv int) (*Candidate, error) {
	if fin.Cmp(finMin) < 0 || fin.Cmp(finMax) > 0 {
		return nil, requestErrorf("input frequency %v outside supported range [%v, %v]", fin, finMin, finMax)
	}
	if foutTarget.Cmp(foutMin) < 0 || foutTarget.Cmp(foutMax) > 0 {
		return nil, requestErrorf("output frequency %v outside supported range [%v, %v]", foutTarget, foutMin, foutMax)
	}
	if feedback != FeedbackAuto {
		return searchTopology(fin, foutTarget, feedback, shiftregDiv), nil
	}
	s := searchTopology(fin, foutTarget, FeedbackSimple, shiftregDiv)
	d := searchTopology(fin, foutTarget, FeedbackDelay, shiftregDiv)
	return closer(s, d, foutTarget), nil
}

// searchTopology enumerates the divider grid for one feedback topology and
// folds every surviving candidate into a running best.
//
// Under SIMPLE feedback the output depends on divq, so the exact feedback
// divider is recomputed at every (divr, divq) grid point. Under every other
// topology divq cancels out of the output and the divq sweep exists only to
// find a value that parks fvco inside its window, so the exact feedback
// divider depends on divr alone.
//
// In both cases the real-valued exact divider is bracketed by its floor and
// ceiling: the fvco window makes feasibility non-monotonic in divf, so both
// roundings are tried at every grid point, floor first. Enumeration order
// (divr ascending, divq ascending, floor before ceiling) is observable
// through the tie-break in closer and must not change.
func searchTopology(fin, target Freq, feedback FeedbackPath, shiftregDiv int) *Candidate {
	var best *Candidate
	for divr := 0; divr <= 15; divr++ {
		if feedback == FeedbackSimple {
			for divq := 0; divq <= 7; divq++ {
				lo, hi := divfBounds(fin, target, divr, divq)
				for _, divf := range [2]int{lo, hi} {
					best = closer(best, tryCandidate(fin, divr, divf, divq, feedback, shiftregDiv), target)
				}
			}
			continue
		}
		lo, hi := divfBounds(fin, target, divr, 0)
		for divq := 0; divq <= 7; divq++ {
			for _, divf := range [2]int{lo, hi} {
				best = closer(best, tryCandidate(fin, divr, divf, divq, feedback, shiftregDiv), target)
			}
		}
	}
	return best
}

// divfBounds returns the floor and ceiling of the real-valued feedback
// divider that would hit target exactly:
//
//	divf = target * (divr+1) * 2^divq / fin - 1
//
// computed with exact rational arithmetic. Pass divq = 0 for topologies
// where the post divider cancels out of the output.
func divfBounds(fin, target Freq, divr, divq int) (lo, hi int) {
	q := target.Div(fin)
	q.Mul(q, big.NewRat(int64(divr+1)<<uint(divq), 1))
	q.Sub(q, big.NewRat(1, 1))
	// big.Rat denominators are positive, so Num/Denom euclidean division
	// floors for negative values too.
	lo = int(new(big.Int).Div(q.Num(), q.Denom()).Int64())
	if q.IsInt() {
		return lo, lo
	}
	return lo, lo + 1
}

// tryCandidate builds and validates one candidate, returning nil if the
// feedback divider is out of range for the topology or the derived
// frequencies fall outside the hardware windows.
func tryCandidate(fin Freq, divr, divf, divq int, feedback FeedbackPath, shiftregDiv int) *Candidate {
	if divf < 0 || divf > 127 {
		return nil
	}
	// the upper half of the 7-bit divider range is unusable outside SIMPLE
	// feedback, independent of the field width.
	if feedback != FeedbackSimple && divf > 63 {
		return nil
	}
	c := NewCandidate(fin, divr, divf, divq, feedback, shiftregDiv)
	if !c.Valid() {
		return nil
	}
	return &c
}

// closer arbitrates between a running best a and a newer candidate b: a is
// kept only when strictly closer to target, so on an exact tie the newer
// candidate wins. Combined with the enumeration order in searchTopology
// this reproduces the reference tool's selection bit for bit.
func closer(a, b *Candidate, target Freq) *Candidate {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	da := a.FOut().Sub(target).Abs()
	db := b.FOut().Sub(target).Abs()
	if da.Cmp(db) < 0 {
		return a
	}
	return b
}
