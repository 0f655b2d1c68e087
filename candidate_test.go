// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package icepll_test

import (
	"testing"

	"github.com/db47h/icepll"
)

func Test_candidate_frequencies(t *testing.T) {
	tests := []struct {
		name             string
		c                icepll.Candidate
		fdiv, fvco, fout icepll.Freq
	}{
		{
			"simple",
			icepll.NewCandidate(icepll.MHz(12), 0, 63, 4, icepll.FeedbackSimple, 1),
			icepll.MHz(12), icepll.MHz(768), icepll.MHz(48),
		},
		{
			"simple divr",
			icepll.NewCandidate(icepll.MHz(48), 3, 63, 4, icepll.FeedbackSimple, 1),
			icepll.MHz(12), icepll.MHz(768), icepll.MHz(48),
		},
		{
			"delay",
			icepll.NewCandidate(icepll.MHz(12), 0, 3, 4, icepll.FeedbackDelay, 1),
			icepll.MHz(12), icepll.MHz(768), icepll.MHz(48),
		},
		{
			"external",
			icepll.NewCandidate(icepll.MHz(12), 0, 3, 4, icepll.FeedbackExternal, 1),
			icepll.MHz(12), icepll.MHz(768), icepll.MHz(48),
		},
		{
			"phase_and_delay div4",
			icepll.NewCandidate(icepll.MHz(12), 0, 3, 2, icepll.FeedbackPhaseAndDelay, 4),
			icepll.MHz(12), icepll.MHz(768), icepll.MHz(48),
		},
		{
			"phase_and_delay div7",
			icepll.NewCandidate(icepll.MHz(12), 0, 3, 1, icepll.FeedbackPhaseAndDelay, 7),
			icepll.MHz(12), icepll.MHz(672), icepll.MHz(48),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.FDiv(); got.Cmp(tt.fdiv) != 0 {
				t.Errorf("FDiv() = %v, want %v", got, tt.fdiv)
			}
			if got := tt.c.FVCO(); got.Cmp(tt.fvco) != 0 {
				t.Errorf("FVCO() = %v, want %v", got, tt.fvco)
			}
			if got := tt.c.FOut(); got.Cmp(tt.fout) != 0 {
				t.Errorf("FOut() = %v, want %v", got, tt.fout)
			}
		})
	}
}

// For every topology but SIMPLE the post divider cancels out of the output:
// sweeping divq moves fvco only.
func Test_candidate_divq_invariance(t *testing.T) {
	want := icepll.MHz(48)
	validQ := 0
	for divq := 0; divq <= 7; divq++ {
		c := icepll.NewCandidate(icepll.MHz(12), 0, 3, divq, icepll.FeedbackDelay, 1)
		if got := c.FOut(); got.Cmp(want) != 0 {
			t.Errorf("divq=%d: FOut() = %v, want %v", divq, got, want)
		}
		if c.Valid() {
			validQ++
			if c.DivQ != 4 {
				t.Errorf("divq=%d: unexpected valid fvco %v", divq, c.FVCO())
			}
		}
	}
	if validQ != 1 {
		t.Errorf("got %d valid divq values, want 1", validQ)
	}
}

// All three windows are inclusive on both ends.
func Test_candidate_boundaries(t *testing.T) {
	tests := []struct {
		name  string
		c     icepll.Candidate
		valid bool
	}{
		// fdiv window: 133MHz is in, one Hertz above is out.
		{"fdiv at max", icepll.NewCandidate(icepll.MHz(133), 0, 7, 2, icepll.FeedbackSimple, 1), true},
		{"fdiv above max", icepll.NewCandidate(icepll.Hz(133000001), 0, 7, 2, icepll.FeedbackSimple, 1), false},
		// fdiv window low end: 10MHz in, below out.
		{"fdiv at min", icepll.NewCandidate(icepll.MHz(10), 0, 63, 4, icepll.FeedbackSimple, 1), true},
		{"fdiv below min", icepll.NewCandidate(icepll.Hz(9999999), 0, 63, 4, icepll.FeedbackSimple, 1), false},
		// fvco window: 533MHz and 1066MHz in, one step outside out.
		{"fvco at min", icepll.NewCandidate(icepll.Hz(66625000), 0, 7, 1, icepll.FeedbackSimple, 1), true},
		{"fvco below min", icepll.NewCandidate(icepll.Hz(66624999), 0, 7, 1, icepll.FeedbackSimple, 1), false},
		{"fvco at max", icepll.NewCandidate(icepll.Hz(66625000), 0, 15, 2, icepll.FeedbackSimple, 1), true},
		{"fvco above max", icepll.NewCandidate(icepll.Hz(66625001), 0, 15, 2, icepll.FeedbackSimple, 1), false},
		// fout window: 16MHz and 275MHz in, half a Hertz outside out.
		{"fout at min", icepll.NewCandidate(icepll.MHz(32), 0, 31, 6, icepll.FeedbackSimple, 1), true},
		{"fout below min", icepll.NewCandidate(icepll.Hz(31999999), 0, 31, 6, icepll.FeedbackSimple, 1), false},
		{"fout at max", icepll.NewCandidate(icepll.MHz(110), 0, 4, 1, icepll.FeedbackSimple, 1), true},
		{"fout above max", icepll.NewCandidate(icepll.Hz(110000001), 0, 4, 1, icepll.FeedbackSimple, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v (fdiv=%v fvco=%v fout=%v)",
					got, tt.valid, tt.c.FDiv(), tt.c.FVCO(), tt.c.FOut())
			}
		})
	}
}

func Test_shiftreg_factor(t *testing.T) {
	if f := icepll.ShiftregNone.Factor(); f != 4 {
		t.Errorf("unset factor = %d, want 4", f)
	}
	if f := icepll.ShiftregDiv4.Factor(); f != 4 {
		t.Errorf("DIV_4 factor = %d, want 4", f)
	}
	if f := icepll.ShiftregDiv7.Factor(); f != 7 {
		t.Errorf("DIV_7 factor = %d, want 7", f)
	}
	if icepll.ShiftregNone.Bit() != 0 || icepll.ShiftregDiv4.Bit() != 0 || icepll.ShiftregDiv7.Bit() != 1 {
		t.Error("SHIFTREG_DIV_MODE bit mapping is wrong")
	}
}

func Test_enum_parsing(t *testing.T) {
	fb, err := icepll.ParseFeedbackPath("phase_and_delay")
	if err != nil || fb != icepll.FeedbackPhaseAndDelay {
		t.Errorf("ParseFeedbackPath = %v, %v", fb, err)
	}
	if _, err = icepll.ParseFeedbackPath("bogus"); err == nil {
		t.Error("ParseFeedbackPath(bogus): expected error")
	}
	os, err := icepll.ParseOutputSelect("SHIFTREG_90DEG")
	if err != nil || os != icepll.OutShiftreg90 {
		t.Errorf("ParseOutputSelect = %v, %v", os, err)
	}
	if _, err = icepll.ParseOutputSelect("bogus"); err == nil {
		t.Error("ParseOutputSelect(bogus): expected error")
	}
}
