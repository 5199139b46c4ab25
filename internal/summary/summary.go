// Package summary folds the persisted per-page results into the human
// readable cross-check report: counts, metric ranges, and validation of the
// dating ratios against what the graphs actually show.
package summary

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/winston-dve-knopki/analyzis-expertize/internal/graphs"
)

// Matching tolerances, inherited from the methodology:
// tolK matches calculation blocks to graph pairs by (K1, K2); tolG1 is the
// relative tolerance for G1 = K2/K1 + Pr2/Pr1; tolD is the absolute
// tolerance for the dating value D in months.
const (
	tolK  = 0.002
	tolG1 = 0.02
	tolD  = 0.5
)

// graphRow is one parsed graph flattened to the fields the checks need.
type graphRow struct {
	Page    int
	GraphID int
	K       *float64 // crystallinity index
	P       *float64 // proton density
	Red     *float64
	Blue    *float64
	Green   *float64
}

// BlockCheck is the outcome of validating one calculation block.
type BlockCheck struct {
	BlockIndex int      `yaml:"block"`
	Matched    bool     `yaml:"matched"`
	G1Graphs   *float64 `yaml:"g1_from_graphs,omitempty"`
	G1OK       bool     `yaml:"g1_ok"`
	DCalc      *float64 `yaml:"d_calc,omitempty"`
	DMet       *float64 `yaml:"d_methodology,omitempty"`
	DPDF       *float64 `yaml:"d_pdf,omitempty"`
	Note       string   `yaml:"note,omitempty"`
}

// Report aggregates everything the summarize command prints and saves.
type Report struct {
	Pages         int      `yaml:"pages"`
	TotalGraphs   int      `yaml:"graphs"`
	ParseFailures []int    `yaml:"parse_failures,omitempty"`
	ErrorPages    []int    `yaml:"error_pages,omitempty"`
	Model         string   `yaml:"model,omitempty"`
	KMin          *float64 `yaml:"k_min,omitempty"`
	KMax          *float64 `yaml:"k_max,omitempty"`
	PrMin         *float64 `yaml:"pr_min,omitempty"`
	PrMax         *float64 `yaml:"pr_max,omitempty"`

	BlocksTotal  int          `yaml:"blocks_total"`
	Matched      int          `yaml:"blocks_matched"`
	G1Agreements int          `yaml:"g1_agreements"`
	DCalcOK      int          `yaml:"d_calc_agreements"`
	DMetOK       int          `yaml:"d_methodology_agreements"`
	Blocks       []BlockCheck `yaml:"blocks,omitempty"`
	SameContent  [][]int      `yaml:"identical_descriptions,omitempty"`
}

// Build folds the results (and optional verified calculations) into a Report.
// The fold is deterministic: same input, same report.
func Build(results map[int]*graphs.PageResult, calc *Calculations) *Report {
	rep := &Report{Pages: len(results)}

	pageNums := make([]int, 0, len(results))
	for p := range results {
		pageNums = append(pageNums, p)
	}
	sort.Ints(pageNums)

	var rows []graphRow
	modelCount := make(map[string]int)
	for _, p := range pageNums {
		r := results[p]
		if r.Model != "" {
			modelCount[r.Model]++
		}
		switch {
		case r.Error != "":
			rep.ErrorPages = append(rep.ErrorPages, p)
			continue
		case r.ParseFailed:
			rep.ParseFailures = append(rep.ParseFailures, p)
			continue
		}
		for _, g := range r.Graphs {
			rep.TotalGraphs++
			m := g.HeaderData.StructuredMetrics
			ym := g.GraphStatistics.YMetricsMax
			rows = append(rows, graphRow{
				Page:    p,
				GraphID: g.GraphID,
				K:       m.CrystallinityIndex,
				P:       m.ProtonDensity,
				Red:     ym.Red,
				Blue:    ym.Blue,
				Green:   ym.Green,
			})
		}
	}

	rep.Model = dominantModel(modelCount)

	for _, row := range rows {
		rep.KMin, rep.KMax = widen(rep.KMin, rep.KMax, row.K)
		rep.PrMin, rep.PrMax = widen(rep.PrMin, rep.PrMax, row.P)
	}

	rep.SameContent = identicalContentGroups(results, pageNums)

	if calc != nil {
		rep.checkBlocks(calc.Blocks, rows)
	}

	return rep
}

func dominantModel(counts map[string]int) string {
	best, bestN := "", 0
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if counts[name] > bestN {
			best, bestN = name, counts[name]
		}
	}
	return best
}

func widen(lo, hi, v *float64) (*float64, *float64) {
	if v == nil {
		return lo, hi
	}
	if lo == nil || *v < *lo {
		lo = v
	}
	if hi == nil || *v > *hi {
		hi = v
	}
	return lo, hi
}

// identicalContentGroups groups pages whose raw model replies match exactly.
// Identical prose for different pages is its own red flag.
func identicalContentGroups(results map[int]*graphs.PageResult, pageNums []int) [][]int {
	byContent := make(map[string][]int)
	for _, p := range pageNums {
		c := strings.TrimSpace(results[p].Content)
		if c == "" {
			continue
		}
		byContent[c] = append(byContent[c], p)
	}

	var out [][]int
	for _, pgs := range byContent {
		if len(pgs) < 2 {
			continue
		}
		sort.Ints(pgs)
		out = append(out, pgs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// checkBlocks matches each calculation block to a pair of graphs and
// recomputes G1 and D from the graph metrics.
//
// Methodology: G1 = K2/K1 + Pr2/Pr1, G2 = L2/L1 + R2/R1, G = G2 - G1,
// D(report) = G1/G, D(methodology) = (G2 - 2)/G. The graphs expose K and Pr
// directly; for G2 the assumption L=Pr, R=blue-max (red as fallback) is used
// and flagged as such.
func (rep *Report) checkBlocks(blocks []CalcBlock, rows []graphRow) {
	rep.BlocksTotal = len(blocks)

	byPage := make(map[int][]graphRow)
	for _, r := range rows {
		byPage[r.Page] = append(byPage[r.Page], r)
	}
	for p := range byPage {
		sort.Slice(byPage[p], func(i, j int) bool { return byPage[p][i].GraphID < byPage[p][j].GraphID })
	}

	for _, b := range blocks {
		check := BlockCheck{BlockIndex: b.BlockIndex, DPDF: b.D}

		first, second, ok := findPair(b, rows, byPage)
		if !ok {
			check.Note = "no graph pair matches (K1, K2)"
			rep.Blocks = append(rep.Blocks, check)
			continue
		}
		check.Matched = true
		rep.Matched++

		if g1 := computeG1(first, second); g1 != nil {
			check.G1Graphs = g1
			if b.G1 != nil && *b.G1 > 0 {
				rel := math.Abs(*g1-*b.G1) / *b.G1
				check.G1OK = rel <= tolG1
				if check.G1OK {
					rep.G1Agreements++
				}
			}
		}

		g2 := computeG2Assumed(first, second)
		if g2 != nil && check.G1Graphs != nil {
			g := *g2 - *check.G1Graphs
			if g > 1e-9 {
				dCalc := *check.G1Graphs / g
				dMet := (*g2 - 2.0) / g
				check.DCalc = &dCalc
				check.DMet = &dMet
				if b.D != nil {
					if math.Abs(dCalc-*b.D) <= tolD {
						rep.DCalcOK++
					}
					if math.Abs(dMet-*b.D) <= tolD {
						rep.DMetOK++
					}
				}
			}
		} else if check.Note == "" {
			check.Note = "G2 not computable from graphs (no Pr or blue/red maxima)"
		}

		rep.Blocks = append(rep.Blocks, check)
	}
}

// findPair picks the two graphs for a block: the block's own page when it
// carries two graphs, otherwise the closest (K1, K2) pair across all pages.
func findPair(b CalcBlock, rows []graphRow, byPage map[int][]graphRow) (graphRow, graphRow, bool) {
	if pair := byPage[b.BlockIndex]; len(pair) >= 2 {
		return pair[0], pair[1], true
	}

	if b.K1 == nil || b.K2 == nil {
		return graphRow{}, graphRow{}, false
	}

	var best [2]graphRow
	bestErr := math.Inf(1)
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			a, c := rows[i], rows[j]
			if a.K == nil || c.K == nil {
				continue
			}
			err1 := sq(*a.K-*b.K1) + sq(*c.K-*b.K2)
			err2 := sq(*c.K-*b.K1) + sq(*a.K-*b.K2)
			if err1 <= err2 && err1 < bestErr {
				bestErr = err1
				best = [2]graphRow{a, c}
			} else if err2 < err1 && err2 < bestErr {
				bestErr = err2
				best = [2]graphRow{c, a}
			}
		}
	}

	if bestErr > tolK*tolK*2 {
		return graphRow{}, graphRow{}, false
	}
	return best[0], best[1], true
}

func sq(x float64) float64 { return x * x }

// computeG1 returns K2/K1 + Pr2/Pr1 with the first graph as sample 1.
func computeG1(first, second graphRow) *float64 {
	if first.K == nil || second.K == nil || first.P == nil || second.P == nil {
		return nil
	}
	if *first.K <= 0 || *first.P <= 0 {
		return nil
	}
	v := *second.K / *first.K + *second.P / *first.P
	return &v
}

// computeG2Assumed returns Pr2/Pr1 + R2/R1 under the assumption L=Pr and
// R=blue curve maximum (red as fallback).
func computeG2Assumed(first, second graphRow) *float64 {
	r1 := first.Blue
	if r1 == nil {
		r1 = first.Red
	}
	r2 := second.Blue
	if r2 == nil {
		r2 = second.Red
	}
	if first.P == nil || second.P == nil || *first.P <= 0 {
		return nil
	}
	if r1 == nil || r2 == nil || *r1 <= 0 {
		return nil
	}
	v := *second.P / *first.P + *r2 / *r1
	return &v
}

// Render produces the plain-text report. Byte-identical for identical input.
func (rep *Report) Render() string {
	var b strings.Builder

	b.WriteString("=== NMR graph analysis summary and dating validation ===\n\n")
	fmt.Fprintf(&b, "Pages with results: %d, graphs described: %d\n", rep.Pages, rep.TotalGraphs)
	if rep.Model != "" {
		fmt.Fprintf(&b, "Model: %s\n", rep.Model)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Parse failures: %d", len(rep.ParseFailures))
	if len(rep.ParseFailures) > 0 {
		fmt.Fprintf(&b, " (pages %v)", rep.ParseFailures)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Transport errors: %d", len(rep.ErrorPages))
	if len(rep.ErrorPages) > 0 {
		fmt.Fprintf(&b, " (pages %v)", rep.ErrorPages)
	}
	b.WriteString("\n\n")

	b.WriteString("--- Extracted metric ranges ---\n")
	writeRange(&b, "crystallinity index K", rep.KMin, rep.KMax)
	writeRange(&b, "proton density Pr", rep.PrMin, rep.PrMax)
	b.WriteString("\n")

	if rep.BlocksTotal > 0 {
		b.WriteString("--- Methodology ---\n")
		b.WriteString("  G1 = K2/K1 + Pr2/Pr1,  G2 = L2/L1 + R2/R1,  G = G2 - G1\n")
		b.WriteString("  D (as calculated in the report) = G1 / G\n")
		b.WriteString("  D (per methodology)             = (G2 - 2) / G  [months]\n")
		b.WriteString("  Graphs provide K and Pr; G2 uses the assumption L=Pr, R=blue max.\n\n")

		b.WriteString("--- Calculation blocks vs graphs ---\n")
		fmt.Fprintf(&b, "  Blocks: %d, matched to graph pairs: %d\n", rep.BlocksTotal, rep.Matched)
		fmt.Fprintf(&b, "  G1 (graphs vs report) agrees: %d\n", rep.G1Agreements)
		fmt.Fprintf(&b, "  D by report formula (G1/G) agrees: %d (tolerance +/-%.1f months)\n", rep.DCalcOK, tolD)
		fmt.Fprintf(&b, "  D by methodology ((G2-2)/G) agrees: %d\n\n", rep.DMetOK)

		b.WriteString("--- Block details ---\n")
		for _, c := range rep.Blocks {
			fmt.Fprintf(&b, "  Block %d: ", c.BlockIndex)
			if !c.Matched {
				fmt.Fprintf(&b, "%s\n", c.Note)
				continue
			}
			if c.G1Graphs != nil {
				status := "mismatch"
				if c.G1OK {
					status = "OK"
				}
				fmt.Fprintf(&b, "G1_graphs=%.4f %s", *c.G1Graphs, status)
			} else {
				b.WriteString("G1 not computable")
			}
			if c.DCalc != nil && c.DMet != nil {
				fmt.Fprintf(&b, "  D_calc=%.2f D_met=%.2f", *c.DCalc, *c.DMet)
				if c.DPDF != nil {
					fmt.Fprintf(&b, " D_report=%.2f", *c.DPDF)
				}
			} else if c.Note != "" {
				fmt.Fprintf(&b, "  (%s)", c.Note)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n  Note: G2 and D rest on the L=Pr, R=blue-max assumption; if that does\n")
		b.WriteString("  not match the methodology, disagreements do not imply an error.\n\n")
	}

	b.WriteString("--- Description uniqueness across pages ---\n")
	if len(rep.SameContent) == 0 {
		b.WriteString("  All page descriptions differ.\n")
	} else {
		for _, g := range rep.SameContent {
			fmt.Fprintf(&b, "  Identical description: pages %v\n", g)
		}
	}

	return b.String()
}

func writeRange(b *strings.Builder, label string, lo, hi *float64) {
	if lo == nil || hi == nil {
		fmt.Fprintf(b, "  %s: no data\n", label)
		return
	}
	fmt.Fprintf(b, "  %s: %.4f .. %.4f\n", label, *lo, *hi)
}

// SaveText writes the rendered report to path.
func SaveText(path string, rep *Report) error {
	if err := os.WriteFile(path, []byte(rep.Render()), 0644); err != nil {
		return fmt.Errorf("failed to write summary report: %w", err)
	}
	return nil
}
