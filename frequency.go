// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package icepll

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// A Freq is an exact frequency in Hertz, represented as a rational number.
// The divider search chains many multiplications and divisions across the
// 4-bit and 7-bit divider ranges and compares results against the hardware
// window limits; rational arithmetic keeps those comparisons exact where
// binary floating point would drift at the boundaries.
//
// A Freq value is immutable: every operation returns a fresh value and
// never modifies its operands. The zero value is not usable; build values
// with Hz, KHz, MHz or ParseFreq.
type Freq struct {
	r *big.Rat
}

// Hz returns the frequency of n Hertz.
func Hz(n int64) Freq { return Freq{big.NewRat(n, 1)} }

// KHz returns the frequency of n kilohertz.
func KHz(n int64) Freq { return Freq{big.NewRat(n*1000, 1)} }

// MHz returns the frequency of n megahertz.
func MHz(n int64) Freq { return Freq{big.NewRat(n*1000000, 1)} }

// freqScale maps unit suffixes to their Hertz multiplier.
var freqScale = []struct {
	suffix string
	mult   int64
}{
	{"ghz", 1000000000},
	{"mhz", 1000000},
	{"khz", 1000},
	{"hz", 1},
	{"g", 1000000000},
	{"m", 1000000},
	{"k", 1000},
}

// ParseFreq parses a frequency from a decimal string with an optional unit
// suffix (Hz, kHz, MHz, GHz, or the bare k/M/G forms, case insensitive).
// A suffix-less value is taken as Hertz. The decimal part is converted
// exactly, without a floating point round trip:
//
//	ParseFreq("48.5MHz") // 48500000 Hz exactly
func ParseFreq(s string) (Freq, error) {
	t := strings.TrimSpace(s)
	mult := int64(1)
	lt := strings.ToLower(t)
	for _, sc := range freqScale {
		if strings.HasSuffix(lt, sc.suffix) {
			mult = sc.mult
			t = strings.TrimSpace(t[:len(t)-len(sc.suffix)])
			break
		}
	}
	r, ok := new(big.Rat).SetString(t)
	if !ok {
		return Freq{}, errors.Errorf("invalid frequency %q", s)
	}
	if r.Sign() < 0 {
		return Freq{}, errors.Errorf("negative frequency %q", s)
	}
	return Freq{r.Mul(r, big.NewRat(mult, 1))}, nil
}

// Mul returns f scaled by the rational factor r.
func (f Freq) Mul(r *big.Rat) Freq {
	return Freq{new(big.Rat).Mul(f.r, r)}
}

// MulInt returns f multiplied by the integer n.
func (f Freq) MulInt(n int64) Freq {
	return Freq{new(big.Rat).Mul(f.r, big.NewRat(n, 1))}
}

// DivInt returns f divided by the integer n. n must not be zero.
func (f Freq) DivInt(n int64) Freq {
	return Freq{new(big.Rat).Mul(f.r, big.NewRat(1, n))}
}

// Sub returns f - g.
func (f Freq) Sub(g Freq) Freq {
	return Freq{new(big.Rat).Sub(f.r, g.r)}
}

// Abs returns the absolute value of f.
func (f Freq) Abs() Freq {
	return Freq{new(big.Rat).Abs(f.r)}
}

// Div returns the dimension-less exact ratio f/g. g must not be zero.
func (f Freq) Div(g Freq) *big.Rat {
	return new(big.Rat).Quo(f.r, g.r)
}

// Rat returns the value of f in Hertz as a rational number. The returned
// value is a copy and may be modified freely.
func (f Freq) Rat() *big.Rat {
	return new(big.Rat).Set(f.r)
}

// Cmp compares f and g and returns -1, 0 or +1.
func (f Freq) Cmp(g Freq) int {
	return f.r.Cmp(g.r)
}

// Less reports whether f < g.
func (f Freq) Less(g Freq) bool { return f.r.Cmp(g.r) < 0 }

// LessEq reports whether f <= g.
func (f Freq) LessEq(g Freq) bool { return f.r.Cmp(g.r) <= 0 }

// String renders f in megahertz with Hertz precision, e.g.
// "48.000000 MHz".
func (f Freq) String() string {
	m := new(big.Rat).Mul(f.r, big.NewRat(1, 1000000))
	return m.FloatString(6) + " MHz"
}
