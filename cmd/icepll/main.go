// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command icepll computes iCE40 PLL divider configurations.
package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/db47h/icepll"
)

var opts = struct {
	fin         string
	fout        string
	feedback    string
	shiftregDiv int
	pllout      string
	tolerance   string
	fdaFeedback int
	fdaRelative int
	lock        bool
	icegate     bool
	request     string
	emitYAML    bool
}{}

var rootCmd = &cobra.Command{
	Use:   "icepll",
	Short: "Compute iCE40 PLL divider configurations",
	Long: `icepll searches the iCE40 PLL divider space for the configuration whose
output frequency is closest to the request and prints the resulting
primitive parameters and ports.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildRequest(cmd)
		if err != nil {
			return err
		}
		cfg, err := icepll.Configure(req)
		if err != nil {
			return err
		}
		if opts.emitYAML {
			return writeYAML(cfg)
		}
		report(cfg)
		return nil
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&opts.fin, "fin", "i", "12MHz", "PLL input frequency")
	f.StringVarP(&opts.fout, "fout", "o", "60MHz", "requested PLL output frequency")
	f.StringVar(&opts.feedback, "feedback", "auto", "feedback path (auto, simple, delay, phase_and_delay, external)")
	f.IntVar(&opts.shiftregDiv, "shiftreg-div", 0, "shift register divide factor (4 or 7, phase_and_delay only)")
	f.StringVar(&opts.pllout, "pllout", "GENCLK", "output select (GENCLK, GENCLK_HALF, SHIFTREG_90deg, SHIFTREG_0deg)")
	f.StringVar(&opts.tolerance, "tolerance", "", "allowed relative output error as a decimal or a/b fraction (default 0.01)")
	f.IntVar(&opts.fdaFeedback, "fda-feedback", -1, "dynamic feedback delay adjustment value (0-15)")
	f.IntVar(&opts.fdaRelative, "fda-relative", -1, "dynamic relative delay adjustment value (0-15)")
	f.BoolVar(&opts.lock, "lock", false, "expose the LOCK status output")
	f.BoolVar(&opts.icegate, "icegate", false, "enable the latched clock output")
	f.StringVarP(&opts.request, "request", "r", "", "read the request from a YAML file (flags override)")
	f.BoolVar(&opts.emitYAML, "yaml", false, "emit the solved configuration as YAML")
}

// requestFile mirrors Request with the string forms used in YAML request
// files.
type requestFile struct {
	FIn         string `yaml:"fin"`
	FOut        string `yaml:"fout"`
	Feedback    string `yaml:"feedback"`
	ShiftregDiv int    `yaml:"shiftreg_div"`
	Pllout      string `yaml:"pllout"`
	Tolerance   string `yaml:"tolerance"`
	FDAFeedback *int   `yaml:"fda_feedback"`
	FDARelative *int   `yaml:"fda_relative"`
	Lock        bool   `yaml:"lock"`
	IceGate     bool   `yaml:"icegate"`
}

func buildRequest(cmd *cobra.Command) (*icepll.Request, error) {
	rf := requestFile{
		FIn:         opts.fin,
		FOut:        opts.fout,
		Feedback:    opts.feedback,
		ShiftregDiv: opts.shiftregDiv,
		Pllout:      opts.pllout,
		Tolerance:   opts.tolerance,
		Lock:        opts.lock,
		IceGate:     opts.icegate,
	}
	if opts.fdaFeedback >= 0 {
		rf.FDAFeedback = &opts.fdaFeedback
	}
	if opts.fdaRelative >= 0 {
		rf.FDARelative = &opts.fdaRelative
	}
	if opts.request != "" {
		data, err := os.ReadFile(opts.request)
		if err != nil {
			return nil, errors.Wrap(err, "read request file")
		}
		var file requestFile
		if err = yaml.Unmarshal(data, &file); err != nil {
			return nil, errors.Wrapf(err, "parse request file %s", opts.request)
		}
		merge(&rf, &file, cmd.Flags().Changed)
	}

	req := &icepll.Request{
		EnableIceGate: rf.IceGate,
		WithLock:      rf.Lock,
	}
	var err error
	if req.FIn, err = icepll.ParseFreq(rf.FIn); err != nil {
		return nil, errors.Wrap(err, "input frequency")
	}
	if req.FOut, err = icepll.ParseFreq(rf.FOut); err != nil {
		return nil, errors.Wrap(err, "output frequency")
	}
	if req.Feedback, err = parseFeedback(rf.Feedback); err != nil {
		return nil, err
	}
	if req.OutputSelect, err = icepll.ParseOutputSelect(rf.Pllout); err != nil {
		return nil, err
	}
	switch rf.ShiftregDiv {
	case 0:
		req.ShiftregDivMode = icepll.ShiftregNone
	case 4:
		req.ShiftregDivMode = icepll.ShiftregDiv4
	case 7:
		req.ShiftregDivMode = icepll.ShiftregDiv7
	default:
		return nil, errors.Errorf("invalid shift register divide factor %d (want 4 or 7)", rf.ShiftregDiv)
	}
	if rf.Tolerance != "" {
		tol, ok := new(big.Rat).SetString(rf.Tolerance)
		if !ok || tol.Sign() < 0 {
			return nil, errors.Errorf("invalid tolerance %q", rf.Tolerance)
		}
		req.Tolerance = tol
	}
	if req.FDAFeedback, err = fdaValue(rf.FDAFeedback, "fda-feedback"); err != nil {
		return nil, err
	}
	if req.FDARelative, err = fdaValue(rf.FDARelative, "fda-relative"); err != nil {
		return nil, err
	}
	return req, nil
}

// parseFeedback maps the CLI spelling "auto" onto the solver's
// unspecified-preference value.
func parseFeedback(s string) (icepll.FeedbackPath, error) {
	if s == "" || s == "auto" || s == "AUTO" {
		return icepll.FeedbackAuto, nil
	}
	return icepll.ParseFeedbackPath(s)
}

func fdaValue(v *int, name string) (*uint8, error) {
	if v == nil {
		return nil, nil
	}
	if *v < 0 || *v > 15 {
		return nil, errors.Errorf("%s value %d out of range 0-15", name, *v)
	}
	u := uint8(*v)
	return &u, nil
}

// merge fills dst fields from the request file unless the matching flag
// was set explicitly on the command line. Flags set by the user always win
// over the file; the file wins over flag defaults.
func merge(dst, src *requestFile, set func(string) bool) {
	if !set("fin") && src.FIn != "" {
		dst.FIn = src.FIn
	}
	if !set("fout") && src.FOut != "" {
		dst.FOut = src.FOut
	}
	if !set("feedback") && src.Feedback != "" {
		dst.Feedback = src.Feedback
	}
	if !set("shiftreg-div") && src.ShiftregDiv != 0 {
		dst.ShiftregDiv = src.ShiftregDiv
	}
	if !set("pllout") && src.Pllout != "" {
		dst.Pllout = src.Pllout
	}
	if !set("tolerance") && src.Tolerance != "" {
		dst.Tolerance = src.Tolerance
	}
	if !set("fda-feedback") && src.FDAFeedback != nil {
		dst.FDAFeedback = src.FDAFeedback
	}
	if !set("fda-relative") && src.FDARelative != nil {
		dst.FDARelative = src.FDARelative
	}
	if !set("lock") {
		dst.Lock = src.Lock
	}
	if !set("icegate") {
		dst.IceGate = src.IceGate
	}
}

func report(cfg *icepll.Config) {
	fmt.Printf("F_PLLIN:  %v (given)\n", cfg.FIn)
	fmt.Printf("F_PLLOUT: %v (requested)\n", cfg.FOutRequested)
	fmt.Printf("F_PLLOUT: %v (achieved)\n", cfg.FOut)
	fmt.Printf("F_DIV:    %v\n", cfg.FDiv)
	fmt.Printf("F_VCO:    %v\n", cfg.FVCO)
	fmt.Println()
	fmt.Println("PARAMETERS:")
	for _, p := range cfg.Params() {
		fmt.Printf("  %-30s = %s\n", p.Name, p.Value)
	}
	fmt.Println()
	fmt.Println("PORTS:")
	for _, p := range cfg.Ports() {
		if p.Width > 1 {
			fmt.Printf("  %-6s [%d] %s\n", p.Dir, p.Width, p.Name)
		} else {
			fmt.Printf("  %-6s     %s\n", p.Dir, p.Name)
		}
	}
}

// configOut is the YAML rendering of a solved configuration.
type configOut struct {
	FIn           string         `yaml:"fin"`
	FOutRequested string         `yaml:"fout_requested"`
	FOutAchieved  string         `yaml:"fout_achieved"`
	FDiv          string         `yaml:"fdiv"`
	FVCO          string         `yaml:"fvco"`
	Params        []icepll.Param `yaml:"params"`
	Ports         []portOut      `yaml:"ports"`
}

type portOut struct {
	Name  string `yaml:"name"`
	Dir   string `yaml:"dir"`
	Width int    `yaml:"width"`
}

func writeYAML(cfg *icepll.Config) error {
	out := configOut{
		FIn:           cfg.FIn.String(),
		FOutRequested: cfg.FOutRequested.String(),
		FOutAchieved:  cfg.FOut.String(),
		FDiv:          cfg.FDiv.String(),
		FVCO:          cfg.FVCO.String(),
		Params:        cfg.Params(),
	}
	for _, p := range cfg.Ports() {
		out.Ports = append(out.Ports, portOut{Name: p.Name, Dir: p.Dir.String(), Width: p.Width})
	}
	data, err := yaml.Marshal(&out)
	if err != nil {
		return errors.Wrap(err, "marshal configuration")
	}
	_, err = os.Stdout.Write(data)
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
