// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package icepll_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/icepll"
)

func params(cfg *icepll.Config) map[string]string {
	m := make(map[string]string)
	for _, p := range cfg.Params() {
		m[p.Name] = p.Value
	}
	return m
}

func portNames(cfg *icepll.Config) []string {
	var names []string
	for _, p := range cfg.Ports() {
		names = append(names, p.Name)
	}
	return names
}

func Test_params(t *testing.T) {
	cfg, err := icepll.Configure(&icepll.Request{
		FIn:      icepll.MHz(12),
		FOut:     icepll.MHz(48),
		Feedback: icepll.FeedbackSimple,
	})
	require.NoError(t, err)
	p := params(cfg)
	assert.Equal(t, "SIMPLE", p["FEEDBACK_PATH"])
	assert.Equal(t, "4'b0000", p["DIVR"])
	assert.Equal(t, "7'b0111111", p["DIVF"])
	assert.Equal(t, "3'b100", p["DIVQ"])
	assert.Equal(t, "3'b001", p["FILTER_RANGE"])
	assert.Equal(t, "FIXED", p["DELAY_ADJUSTMENT_MODE_FEEDBACK"])
	assert.Equal(t, "4'b0000", p["FDA_FEEDBACK"])
	assert.Equal(t, "FIXED", p["DELAY_ADJUSTMENT_MODE_RELATIVE"])
	assert.Equal(t, "4'b0000", p["FDA_RELATIVE"])
	assert.Equal(t, "1'b0", p["SHIFTREG_DIV_MODE"])
	assert.Equal(t, "GENCLK", p["PLLOUT_SELECT"])
	assert.Equal(t, "1'b0", p["ENABLE_ICEGATE"])
}

// the optional signals appear only when the configuration calls for them.
func Test_ports_presence(t *testing.T) {
	base := icepll.Request{FIn: icepll.MHz(12), FOut: icepll.MHz(48)}

	cfg, err := icepll.Configure(&base)
	require.NoError(t, err)
	names := portNames(cfg)
	assert.Equal(t, []string{"REFERENCECLK", "RESETB", "BYPASS", "PLLOUTGLOBAL", "PLLOUTCORE"}, names)

	ext := base
	ext.Feedback = icepll.FeedbackExternal
	cfg, err = icepll.Configure(&ext)
	require.NoError(t, err)
	assert.Contains(t, portNames(cfg), "EXTFEEDBACK")

	dyn := base
	dyn.FDARelative = u8(5)
	cfg, err = icepll.Configure(&dyn)
	require.NoError(t, err)
	names = portNames(cfg)
	assert.Contains(t, names, "DYNAMICDELAY")
	for _, p := range cfg.Ports() {
		if p.Name == "DYNAMICDELAY" {
			assert.Equal(t, 8, p.Width)
			assert.Equal(t, icepll.PortIn, p.Dir)
		}
	}

	gated := base
	gated.EnableIceGate = true
	cfg, err = icepll.Configure(&gated)
	require.NoError(t, err)
	assert.Contains(t, portNames(cfg), "LATCHINPUTVALUE")

	locked := base
	locked.WithLock = true
	cfg, err = icepll.Configure(&locked)
	require.NoError(t, err)
	names = portNames(cfg)
	assert.Contains(t, names, "LOCK")
	assert.Equal(t, "PLLOUTCORE", names[len(names)-1])
}
