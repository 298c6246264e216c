// Package stats counts operand forms and addressing modes in a listing.
package stats

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/vishen/sim8086/internal/decoder"
)

// Addressing modes.
const (
	ModeRegister  = "register"
	ModeMemory    = "memory"
	ModeDisp8     = "memory+disp8"
	ModeDisp16    = "memory+disp16"
	ModeDirect    = "direct"
	ModeImmediate = "immediate"
)

// Summary holds instruction counts keyed by operand form (e.g. "reg,mem")
// and by addressing mode.
type Summary struct {
	Instructions int
	Bytes        int
	Forms        map[string]int
	Modes        map[string]int
}

func Collect(insts []decoder.Instruction) Summary {
	s := Summary{
		Forms: make(map[string]int),
		Modes: make(map[string]int),
	}
	for _, in := range insts {
		s.Instructions++
		s.Bytes += in.Size
		s.Forms[form(in.Dst)+","+form(in.Src)]++
		s.Modes[mode(in)]++
	}
	return s
}

func form(op decoder.Operand) string {
	switch op.(type) {
	case decoder.Register:
		return "reg"
	case decoder.EffectiveAddress:
		return "mem"
	case decoder.Immediate:
		return "imm"
	}
	return "?"
}

func mode(in decoder.Instruction) string {
	f, ok := in.Fields.(decoder.MoveFields)
	if !ok {
		return ModeImmediate
	}
	switch f.Mod {
	case decoder.ModRegister:
		return ModeRegister
	case decoder.ModMemoryDisp8:
		return ModeDisp8
	case decoder.ModMemoryDisp16:
		return ModeDisp16
	}
	for _, op := range []decoder.Operand{in.Dst, in.Src} {
		if ea, ok := op.(decoder.EffectiveAddress); ok && ea.Direct {
			return ModeDirect
		}
	}
	return ModeMemory
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WriteTable prints the summary as two aligned tables.
func (s Summary) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "instructions\t%d\n", s.Instructions)
	fmt.Fprintf(tw, "bytes\t%d\n", s.Bytes)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "form\tcount")
	for _, k := range sortedKeys(s.Forms) {
		fmt.Fprintf(tw, "%s\t%d\n", k, s.Forms[k])
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "mode\tcount")
	for _, k := range sortedKeys(s.Modes) {
		fmt.Fprintf(tw, "%s\t%d\n", k, s.Modes[k])
	}
	return tw.Flush()
}

func bar(title string, m map[string]int) *charts.Bar {
	keys := sortedKeys(m)
	data := make([]opts.BarData, 0, len(keys))
	for _, k := range keys {
		data = append(data, opts.BarData{Value: m[k]})
	}

	b := charts.NewBar()
	b.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	b.SetXAxis(keys).AddSeries("instructions", data)
	return b
}

// RenderChart writes an HTML page with a bar chart per table.
func (s Summary) RenderChart(w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = "sim8086"
	page.AddCharts(
		bar("Operand forms", s.Forms),
		bar("Addressing modes", s.Modes),
	)
	return page.Render(w)
}
