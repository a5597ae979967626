// Copyright 2017 The Gomm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/gomm/tsr"
)

// constants
var (
	PlotSet1 = []string{"p,q", "i,f", "i,z", "i,gdot"}
	PlotSet2 = []string{"p,q,ys", "i,pk2", "i,f", "i,z"}
)

type PlotFcn_t func()

// Plotter draws stress paths and yield surfaces from driver results. Yield
// values and invariants are computed with the reference metric; the plots are
// visual aids, not substitutes for the converged measures
type Plotter struct {

	// optional variables
	PlotFcn PlotFcn_t // callback function to call before saving plot
	PngRes  int       // resolution for .png files
	Split   bool      // split graphs instead of using subplot
	NptsYs  int       // number of points to draw yield lines
	SaveDir string    // directory to put figure
	SaveFnk string    // save figure after plot (filename)
	UseEps  bool      // save eps figure instead of png
	WithYs  bool      // with yield line (if model != nil)
	Clr     string    // curve color
	Mrk     string    // curve marker
	Lbl     string    // curve label
	Ls      string    // curve linestyle
	SpMrk   string    // start-point marker
	EpMrk   string    // end-point marker
	SpClr   string    // start-point marker color
	EpClr   string    // end-point marker color
	SpMs    int       // start-point marker size
	EpMs    int       // end-point marker size
	YsClr   string    // color for yield lines
	YsLs    string    // yield line style
	YsLw    float64   // yield line width
	YsRngM  float64   // multiplier to increase the range when drawing yield lines

	// subplots
	Nrow int // subplot number of rows
	Ncol int // subplot number of cols
	Pidx int // subplot index

	// internal variables
	m *ElastoPlastic // the model

	// results
	P, Q []float64 // macro stress invariants

	// limits
	Lims map[string][]float64 // limits to be used with a particular plotset
}

// SetFig sets figure space for plotting
// Note: this method is optional
func (o *Plotter) SetFig(split, epsfig bool, prop, width float64, savedir, savefnk string) {
	plt.Reset()
	if o.PngRes < 150 {
		o.PngRes = 150
	}
	o.Split = split
	o.UseEps = epsfig
	if o.UseEps {
		plt.SetForEps(prop, width)
	} else {
		plt.SetForPng(prop, width, o.PngRes)
	}
	o.SaveDir = savedir
	o.SaveFnk = io.FnKey(savefnk)
	o.set_default_clr_mrk()
}

// SetModel sets the model for drawing yield lines
// Note: this method is optional
func (o *Plotter) SetModel(m *ElastoPlastic) {
	o.m = m
}

// Title addes title to plot
func (o *Plotter) Title(text string) {
	plt.SupTitle(text, "size=10")
}

// pqRef computes the pressure-like and deviatoric invariants of a packed
// second-order stress with the reference metric
func pqRef(v []float64) (p, q float64) {
	p = (v[0] + v[1] + v[2]) / 3.0
	for a := 0; a < 9; a++ {
		d := v[a]
		if a < 3 {
			d -= p
		}
		q += d * d
	}
	return p, math.Sqrt(q)
}

// Plot runs the plot generation. res holds the stresses and svs the state
// variables along the path, as stored by the driver
func (o *Plotter) Plot(keys []string, res []*Stresses, svs [][]float64, first, last bool) {

	// auxiliary variables
	nr := len(res)
	if nr < 1 {
		return
	}
	x := make([]float64, nr)
	y := make([]float64, nr)
	o.P = make([]float64, nr)
	o.Q = make([]float64, nr)

	// compute invariants
	for i := 0; i < nr; i++ {
		if len(res[i].PK2) != 9 {
			chk.Panic("number of stress components is incorrect: %d", len(res[i].PK2))
		}
		o.P[i], o.Q[i] = pqRef(res[i].PK2)
	}

	// clear previous figure
	if first {
		plt.Clf()
		plt.SplotGap(0.35, 0.35)
	}

	// number of points for yield lines
	if o.NptsYs < 2 {
		o.NptsYs = 21
	}

	// subplot variables
	o.Pidx = 1
	o.Ncol, o.Nrow = utl.BestSquare(len(keys))
	if len(keys) == 2 {
		o.Ncol, o.Nrow = 1, 2
	}
	if len(keys) == 3 {
		o.Ncol, o.Nrow = 1, 3
	}

	// do plot
	for _, key := range keys {
		o.Subplot()
		switch key {
		case "p,q":
			o.WithYs = false
			o.Plot_p_q(x, y, res, svs, last)
		case "p,q,ys":
			o.WithYs = true
			o.Plot_p_q(x, y, res, svs, last)
		case "i,pk2":
			o.Plot_i_pk2(x, y, res, last)
		case "i,f":
			o.Plot_i_f(x, y, res, svs, last)
		case "i,z":
			o.Plot_i_sdv(x, res, svs, 50, "$z_%d$", "i,z", last)
		case "i,gdot":
			o.Plot_i_sdv(x, res, svs, 45, "$\\dot{\\gamma}_%d$", "i,gdot", last)
		case "empty":
			continue
		default:
			chk.Panic("cannot handle key=%q", key)
		}
		if o.Split && last {
			o.Save("_", key)
		}
	}

	// save figure
	if !o.Split && last {
		o.Save("", "")
	}
}

func (o *Plotter) Plot_p_q(x, y []float64, res []*Stresses, svs [][]float64, last bool) {
	// stress path
	nr := len(res)
	k := nr - 1
	var xmi, xma, ymi, yma float64
	for i := 0; i < nr; i++ {
		x[i], y[i] = o.P[i], o.Q[i]
		if i == 0 {
			xmi, xma = x[i], x[i]
			ymi, yma = y[i], y[i]
		} else {
			xmi = utl.Min(xmi, x[i])
			xma = utl.Max(xma, x[i])
			ymi = utl.Min(ymi, y[i])
			yma = utl.Max(yma, y[i])
		}
	}
	plt.Plot(x, y, io.Sf("'r.', ls='%s', clip_on=0, color='%s', marker='%s', label=r'%s'", o.Ls, o.Clr, o.Mrk, o.Lbl))
	plt.PlotOne(x[0], y[0], io.Sf("'bo', clip_on=0, color='%s', marker='%s', ms=%d", o.SpClr, o.SpMrk, o.SpMs))
	plt.PlotOne(x[k], y[k], io.Sf("'bs', clip_on=0, color='%s', marker='%s', ms=%d", o.SpClr, o.EpMrk, o.EpMs))
	// yield line of the macro surface: q + By·p - Ay·c(z) = 0
	if o.WithYs && o.m != nil {
		s := &o.m.surfs[0]
		z := 0.0
		if len(svs) == len(res) && len(svs[k]) == NsdvDP {
			z = svs[k][50]
		}
		xmi, xma, _, _ = o.fix_range(0, xmi, xma, ymi, yma)
		xl := make([]float64, o.NptsYs)
		yl := make([]float64, o.NptsYs)
		dx := (xma - xmi) / float64(o.NptsYs-1)
		for i := 0; i < o.NptsYs; i++ {
			xl[i] = xmi + float64(i)*dx
			yl[i] = utl.Max(s.Ay*s.cohesion(z)-s.By*xl[i], 0)
		}
		plt.Plot(xl, yl, io.Sf("'g-', ls='%s', lw=%g, clip_on=0, color='%s', label=r'ys %s'", o.YsLs, o.YsLw, o.YsClr, o.Lbl))
	}
	// settings
	if last {
		plt.Gll("$p$", "$q$", "leg_out=1, leg_ncol=4, leg_hlen=1.5")
		if lims, ok := o.Lims["p,q"]; ok {
			plt.AxisLims(lims)
		}
		if lims, ok := o.Lims["p,q,ys"]; ok {
			plt.AxisLims(lims)
		}
	}
}

func (o *Plotter) Plot_i_pk2(x, y []float64, res []*Stresses, last bool) {
	nr := len(res)
	yy := la.MatAlloc(3, nr)
	for i := 0; i < nr; i++ {
		x[i] = float64(i)
		for j := 0; j < 3; j++ {
			yy[j][i] = res[i].PK2[j]
		}
	}
	for j := 0; j < 3; j++ {
		lbl := io.Sf("$S_{%d%d}$ "+o.Lbl, j+1, j+1)
		plt.Plot(x, yy[j], io.Sf("'r-', ls='-', clip_on=0, color='%s', marker='%s', label=r'%s'", o.Clr, o.Mrk, lbl))
	}
	if last {
		plt.Gll("$i$", "$S_{aa}$", "leg_out=1, leg_ncol=4, leg_hlen=2")
		if lims, ok := o.Lims["i,pk2"]; ok {
			plt.AxisLims(lims)
		}
	}
}

func (o *Plotter) Plot_i_f(x, y []float64, res []*Stresses, svs [][]float64, last bool) {
	if o.m == nil {
		o.set_empty()
		return
	}
	nr := len(res)
	yy := la.MatAlloc(Nsurf, nr)
	S := make([]float64, 45)
	for i := 0; i < nr; i++ {
		x[i] = float64(i)
		copy(S[:9], res[i].PK2)
		copy(S[9:18], res[i].Sig)
		copy(S[18:], res[i].M)
		z := make([]float64, Nsurf)
		if len(svs) == nr && len(svs[i]) == NsdvDP {
			copy(z, svs[i][50:55])
		}
		ms := &Measures{C: tsr.It, Ci: tsr.It}
		fs := o.m.YieldFuncs(S, ms, z)
		for j := 0; j < Nsurf; j++ {
			yy[j][i] = fs[j]
		}
	}
	for j := 0; j < Nsurf; j++ {
		lbl := io.Sf("$f_{%s}$ "+o.Lbl, o.m.surfs[j].name)
		plt.Plot(x, yy[j], io.Sf("'r-', ls='-', clip_on=0, color='%s', marker='%s', label=r'%s'", o.Clr, o.Mrk, lbl))
	}
	if last {
		plt.Gll("$i$", "$f_k$", "leg_out=1, leg_ncol=3, leg_hlen=2")
		if lims, ok := o.Lims["i,f"]; ok {
			plt.AxisLims(lims)
		}
	}
}

// Plot_i_sdv plots a block of Nsurf state variables starting at offset
func (o *Plotter) Plot_i_sdv(x []float64, res []*Stresses, svs [][]float64, offset int, lblfmt, limkey string, last bool) {
	nr := len(res)
	if len(svs) != nr {
		o.set_empty()
		return
	}
	yy := la.MatAlloc(Nsurf, nr)
	for i := 0; i < nr; i++ {
		x[i] = float64(i)
		if len(svs[i]) != NsdvDP {
			o.set_empty()
			return
		}
		for j := 0; j < Nsurf; j++ {
			yy[j][i] = svs[i][offset+j]
		}
	}
	for j := 0; j < Nsurf; j++ {
		lbl := io.Sf(lblfmt+" "+o.Lbl, j)
		plt.Plot(x, yy[j], io.Sf("'r-', ls='-', clip_on=0, color='%s', marker='%s', label=r'%s'", o.Clr, o.Mrk, lbl))
	}
	if last {
		plt.Gll("$i$", "", "leg_out=1, leg_ncol=3, leg_hlen=2")
		if lims, ok := o.Lims[limkey]; ok {
			plt.AxisLims(lims)
		}
	}
}

func (o *Plotter) set_empty() {
	plt.AxisOff()
}

// Save saves figure
func (o *Plotter) Save(typ, num string) {
	if o.PlotFcn != nil {
		o.PlotFcn()
	}
	ext := ".png"
	if o.UseEps {
		ext = ".eps"
	}
	if o.SaveFnk != "" {
		if o.SaveDir != "" {
			plt.SaveD(o.SaveDir, o.SaveFnk+typ+num+ext)
			return
		}
		plt.Save(o.SaveFnk + typ + num + ext)
	}
}

// Subplot sets subplot
func (o *Plotter) Subplot() {
	if o.Split {
		plt.Clf()
		return
	}
	plt.Subplot(o.Nrow, o.Ncol, o.Pidx)
	o.Pidx += 1
}

// set_default_clr_mrk sets default colors and markers
func (o *Plotter) set_default_clr_mrk() {
	if o.Clr == "" {
		o.Clr = "red"
	}
	if o.Ls == "" {
		o.Ls = "-"
	}
	if o.SpMrk == "" {
		o.SpMrk = "o"
	}
	if o.EpMrk == "" {
		o.EpMrk = "s"
	}
	if o.SpClr == "" {
		o.SpClr = "black"
	}
	if o.EpClr == "" {
		o.EpClr = "black"
	}
	if o.SpMs == 0 {
		o.SpMs = 3
	}
	if o.EpMs == 0 {
		o.EpMs = 3
	}
	if o.YsClr == "" {
		o.YsClr = "green"
	}
	if o.YsLs == "" {
		o.YsLs = "--"
	}
	if o.YsLw < 0.1 {
		o.YsLw = 0.7
	}
}

// fix_range fixes the range of scale to draw yield lines
func (o *Plotter) fix_range(middle, Xmi, Xma, Ymi, Yma float64) (xmi, xma, ymi, yma float64) {
	xmi, xma, ymi, yma = Xmi, Xma, Ymi, Yma
	if xma-xmi < 1e-7 {
		xmi, xma = -1+middle, 1+middle
	}
	if yma-ymi < 1e-7 {
		ymi, yma = -1+middle, 1+middle
	}
	m := o.YsRngM
	if m < 1e-7 {
		m = 0.2
	}
	xmi -= m * (xma - xmi)
	xma += m * (xma - xmi)
	ymi -= m * (yma - ymi)
	yma += m * (yma - ymi)
	return
}
