// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import "testing"

// A flag set explicitly on the command line must beat the request file for
// every field; the file must beat flag defaults.
func Test_merge_precedence(t *testing.T) {
	fda := 3
	file := requestFile{
		FIn:         "16MHz",
		FOut:        "96MHz",
		Feedback:    "simple",
		ShiftregDiv: 4,
		Pllout:      "GENCLK_HALF",
		Tolerance:   "0.02",
		FDAFeedback: &fda,
		Lock:        true,
		IceGate:     true,
	}

	// no flags set: the file fills everything it names.
	dst := requestFile{FIn: "12MHz", FOut: "60MHz", Feedback: "auto", Pllout: "GENCLK"}
	merge(&dst, &file, func(string) bool { return false })
	if dst.FIn != "16MHz" || dst.FOut != "96MHz" || dst.Feedback != "simple" ||
		dst.ShiftregDiv != 4 || dst.Pllout != "GENCLK_HALF" || dst.Tolerance != "0.02" ||
		dst.FDAFeedback != &fda || !dst.Lock || !dst.IceGate {
		t.Errorf("file did not fill unset fields: %+v", dst)
	}

	// every flag set: the file must not touch anything.
	dst = requestFile{FIn: "12MHz", FOut: "60MHz", Feedback: "auto", Pllout: "GENCLK"}
	merge(&dst, &file, func(string) bool { return true })
	if dst.FIn != "12MHz" || dst.FOut != "60MHz" || dst.Feedback != "auto" ||
		dst.ShiftregDiv != 0 || dst.Pllout != "GENCLK" || dst.Tolerance != "" ||
		dst.FDAFeedback != nil || dst.Lock || dst.IceGate {
		t.Errorf("file overrode explicit flags: %+v", dst)
	}

	// mixed: only -i set, the rest comes from the file.
	dst = requestFile{FIn: "20MHz", FOut: "60MHz", Feedback: "auto", Pllout: "GENCLK"}
	merge(&dst, &file, func(name string) bool { return name == "fin" })
	if dst.FIn != "20MHz" {
		t.Errorf("explicit --fin lost to file: got %q", dst.FIn)
	}
	if dst.FOut != "96MHz" || dst.ShiftregDiv != 4 {
		t.Errorf("file did not fill remaining fields: %+v", dst)
	}
}
