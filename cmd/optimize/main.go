// Package main tunes beast and plant parameters with CMA-ES, scoring each
// candidate by how long headless episodes last.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/beasts/config"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 20000, "Maximum episode length in ticks (cap)")
	seeds := flag.Int("seeds", 4, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	// Every finished episode logs at info level.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	params := NewParamVector()
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, *maxTicks, evalSeeds, baseCfg)

	evalLog, err := newEvalLog(filepath.Join(*outputDir, "optimize_log.csv"), params, *maxEvals)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer evalLog.Close()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(raw)
			evalLog.Record(raw, fitness, evaluator.LastQuality())
			return fitness
		},
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(params.Dim())/2.0)
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // seeds already run in parallel inside Evaluate
	}

	fmt.Printf("Tuning %d parameters: population=%d, max_evals=%d, seeds=%d, tick cap=%d\n",
		params.Dim(), popSize, *maxEvals, *seeds, *maxTicks)

	initX := params.Normalize(params.ExtractFromConfig(baseCfg))
	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	best := evalLog.best
	if best == nil {
		best = params.Clamp(params.Denormalize(result.X))
	}

	fmt.Printf("\n%d evaluations in %s, best fitness %.0f\n", evalLog.count, formatDuration(time.Since(evalLog.start)), evalLog.bestFitness)
	for i, spec := range params.Specs {
		fmt.Printf("  %-22s %-28s %.6f\n", spec.Name, spec.Path, best[i])
	}

	writeBest(*outputDir, baseCfg, params, best, evaluator)
}

// evalLog appends one CSV row per evaluation and tracks the best candidate.
type evalLog struct {
	file     *os.File
	w        *csv.Writer
	maxEvals int
	start    time.Time

	count       int
	best        []float64
	bestFitness float64
}

func newEvalLog(path string, params *ParamVector, maxEvals int) (*evalLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	l := &evalLog{file: f, w: csv.NewWriter(f), maxEvals: maxEvals, start: time.Now()}

	header := []string{"eval", "fitness", "quality"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	l.w.Write(header)
	return l, nil
}

// Record logs an evaluation of raw parameter values and prints progress.
func (l *evalLog) Record(raw []float64, fitness, quality float64) {
	l.count++
	if l.best == nil || fitness < l.bestFitness {
		l.best = raw
		l.bestFitness = fitness
	}

	row := []string{strconv.Itoa(l.count), fmt.Sprintf("%.6f", fitness), fmt.Sprintf("%.4f", quality)}
	for _, v := range raw {
		row = append(row, fmt.Sprintf("%.6f", v))
	}
	l.w.Write(row)
	l.w.Flush()

	elapsed := time.Since(l.start)
	eta := time.Duration(l.maxEvals-l.count) * (elapsed / time.Duration(l.count))
	ticks := -fitness / (1.0 + 0.2*quality)
	fmt.Printf("Eval %d/%d: ticks=%.0f quality=%.2f (best=%.0f) | elapsed: %s, ETA: %s\n",
		l.count, l.maxEvals, ticks, quality, l.bestFitness, formatDuration(elapsed), formatDuration(eta))
}

func (l *evalLog) Close() error {
	l.w.Flush()
	return l.file.Close()
}

// writeBest saves the best config and the per-seed episodes it produced.
func writeBest(dir string, baseCfg *config.Config, params *ParamVector, best []float64, evaluator *FitnessEvaluator) {
	bestCfg := *baseCfg
	if err := params.ApplyToConfig(&bestCfg, best); err != nil {
		log.Printf("best parameters rejected: %v", err)
	} else if err := bestCfg.WriteYAML(filepath.Join(dir, "best_config.yaml")); err != nil {
		log.Printf("failed to write best config: %v", err)
	}

	episodes := evaluator.BestEpisodes()
	if len(episodes) == 0 {
		return
	}
	f, err := os.Create(filepath.Join(dir, "best_episodes.csv"))
	if err != nil {
		log.Printf("failed to create episodes file: %v", err)
		return
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&episodes, f); err != nil {
		log.Printf("failed to write best episodes: %v", err)
	}
}

// formatDuration formats a duration as 1h02m03s or 2m03s.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
