// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package icepll

import "strconv"

// A Param is one named hardware parameter of the PLL primitive, with its
// value rendered the way the instantiation expects it: sized binary
// literals for the numeric fields, bare symbols for the enumerated ones.
type Param struct {
	Name  string
	Value string
}

// Params returns the parameter bindings for c, in declaration order.
func (c *Config) Params() []Param {
	return []Param{
		{"FEEDBACK_PATH", c.FeedbackPath.String()},
		{"DELAY_ADJUSTMENT_MODE_FEEDBACK", c.DelayAdjustmentModeFeedback.String()},
		{"FDA_FEEDBACK", bin(c.FDAFeedback, 4)},
		{"DELAY_ADJUSTMENT_MODE_RELATIVE", c.DelayAdjustmentModeRelative.String()},
		{"FDA_RELATIVE", bin(c.FDARelative, 4)},
		{"SHIFTREG_DIV_MODE", bin(c.ShiftregDivMode, 1)},
		{"PLLOUT_SELECT", c.PlloutSelect.String()},
		{"DIVR", bin(c.DivR, 4)},
		{"DIVF", bin(c.DivF, 7)},
		{"DIVQ", bin(c.DivQ, 3)},
		{"FILTER_RANGE", bin(c.FilterRange, 3)},
		{"ENABLE_ICEGATE", bin(b2u(c.EnableIceGate), 1)},
	}
}

// bin renders v as a sized binary literal, e.g. bin(5, 4) == "4'b0101".
func bin(v uint8, bits int) string {
	s := strconv.FormatUint(uint64(v), 2)
	for len(s) < bits {
		s = "0" + s
	}
	return strconv.Itoa(bits) + "'b" + s
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// PortDir is the direction of a PLL primitive port.
type PortDir int

// Port directions.
const (
	PortIn PortDir = iota
	PortOut
)

func (d PortDir) String() string {
	if d == PortOut {
		return "output"
	}
	return "input"
}

// A Port is one signal of the PLL primitive.
type Port struct {
	Name  string
	Dir   PortDir
	Width int
}

// Ports returns the signal list for c. Presence of the optional signals
// follows the configuration: EXTFEEDBACK exists only under EXTERNAL
// feedback, DYNAMICDELAY only when a delay adjustment mode is DYNAMIC,
// LATCHINPUTVALUE only when gating is enabled and LOCK only when the lock
// output was requested.
func (c *Config) Ports() []Port {
	ports := []Port{
		{"REFERENCECLK", PortIn, 1},
		{"RESETB", PortIn, 1},
		{"BYPASS", PortIn, 1},
	}
	if c.FeedbackPath == FeedbackExternal {
		ports = append(ports, Port{"EXTFEEDBACK", PortIn, 1})
	}
	if c.DelayAdjustmentModeFeedback == DelayDynamic || c.DelayAdjustmentModeRelative == DelayDynamic {
		ports = append(ports, Port{"DYNAMICDELAY", PortIn, 8})
	}
	if c.EnableIceGate {
		ports = append(ports, Port{"LATCHINPUTVALUE", PortIn, 1})
	}
	if c.WithLock {
		ports = append(ports, Port{"LOCK", PortOut, 1})
	}
	ports = append(ports,
		Port{"PLLOUTGLOBAL", PortOut, 1},
		Port{"PLLOUTCORE", PortOut, 1},
	)
	return ports
}
