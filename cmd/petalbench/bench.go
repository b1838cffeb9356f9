package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/petalcluster/petalcluster"
	"github.com/petalcluster/petalcluster/internal/logger"
)

const (
	defaultMinTime = 500 * time.Millisecond
	packageName    = "petalcluster"

	// Parameters shared with the reference scripts.
	benchEps            = 3.0
	benchMinSamples     = 5
	benchMinClusterSize = 15
)

type config struct {
	DataDir    string
	Out        string
	Dims       []int
	Algorithms []petalcluster.Algorithm
	MinIters   int
	MinTime    time.Duration
	Accelerate bool
}

func loadConfig(v *viper.Viper) (config, error) {
	cfg := config{
		DataDir:    v.GetString("data-dir"),
		Out:        v.GetString("out"),
		MinIters:   v.GetInt("min-iters"),
		MinTime:    v.GetDuration("min-time"),
		Accelerate: v.GetBool("accelerate"),
	}

	for _, field := range splitList(v.GetStringSlice("dims")) {
		d, err := strconv.Atoi(field)
		if err != nil || d < 1 {
			return config{}, errors.Newf("invalid dimensionality %q", field)
		}
		cfg.Dims = append(cfg.Dims, d)
	}
	for _, field := range splitList(v.GetStringSlice("algorithms")) {
		algo, err := parseAlgorithm(field)
		if err != nil {
			return config{}, err
		}
		cfg.Algorithms = append(cfg.Algorithms, algo)
	}

	if len(cfg.Dims) == 0 || len(cfg.Algorithms) == 0 {
		return config{}, errors.New("nothing to benchmark: --dims and --algorithms must be non-empty")
	}
	if cfg.MinIters < 1 {
		return config{}, errors.Newf("--min-iters must be >= 1, got %d", cfg.MinIters)
	}
	return cfg, nil
}

// splitList flattens values that may themselves be comma separated, as
// they are when they come from the environment.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, field := range strings.Split(v, ",") {
			if field = strings.TrimSpace(field); field != "" {
				out = append(out, field)
			}
		}
	}
	return out
}

func parseAlgorithm(s string) (petalcluster.Algorithm, error) {
	for _, a := range []petalcluster.Algorithm{
		petalcluster.AlgorithmDBSCAN,
		petalcluster.AlgorithmHDBSCAN,
		petalcluster.AlgorithmOPTICS,
	} {
		if strings.EqualFold(s, a.String()) {
			return a, nil
		}
	}
	return 0, errors.WithHint(errors.Newf("unknown algorithm %q", s), "choose from dbscan, hdbscan, optics")
}

// dataset is one blob file loaded as a host matrix.
type dataset struct {
	Path string
	X    petalcluster.Matrix
}

var blobFile = regexp.MustCompile(`^blobs_.*_d(\d+)\.csv$`)

// findDatasets returns the blob files of dimensionality d in dir, sorted
// by name.
func findDatasets(dir string, d int) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading data directory %s", dir)
	}
	var paths []string
	for _, e := range entries {
		m := blobFile.FindStringSubmatch(e.Name())
		if e.IsDir() || m == nil || m[1] != strconv.Itoa(d) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, errors.WithHint(
			errors.Newf("no files matching blobs_*_d%d.csv in %s", d, dir),
			"generate the shared datasets first")
	}
	slices.Sort(paths)
	return paths, nil
}

// loadDataset reads a CSV with one header row and one point per line into
// a column-major host matrix.
func loadDataset(path string) (dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataset{}, errors.Wrap(err, "opening dataset")
	}
	defer f.Close()
	x, err := readMatrix(f)
	if err != nil {
		return dataset{}, errors.Wrapf(err, "reading %s", path)
	}
	return dataset{Path: path, X: x}, nil
}

func readMatrix(r io.Reader) (petalcluster.Matrix, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	if _, err := cr.Read(); err != nil {
		return petalcluster.Matrix{}, errors.Wrap(err, "reading header")
	}

	var rows [][]float64
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return petalcluster.Matrix{}, err
		}
		row := make([]float64, len(rec))
		for j, field := range rec {
			if row[j], err = strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil {
				return petalcluster.Matrix{}, errors.Wrapf(err, "line %d", len(rows)+2)
			}
		}
		rows = append(rows, row)
	}

	n := len(rows)
	d := 0
	if n > 0 {
		d = len(rows[0])
	}
	data := make([]float64, n*d)
	for i, row := range rows {
		for j, v := range row {
			data[j*n+i] = v
		}
	}
	return petalcluster.Matrix{Data: data, Rows: n, Cols: d}, nil
}

// median runs fn until it has at least minIters timings summing to at
// least minTime and returns the median.
func median(ctx context.Context, fn func(), minIters int, minTime time.Duration) (time.Duration, error) {
	var times []time.Duration
	var total time.Duration
	for len(times) < minIters || total < minTime {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		runtime.GC()
		start := time.Now()
		fn()
		elapsed := time.Since(start)
		times = append(times, elapsed)
		total += elapsed
	}
	slices.Sort(times)
	return times[len(times)/2], nil
}

// resultRow is one line of the results CSV.
type resultRow struct {
	Algorithm string
	Dataset   string
	N         int
	Dims      int
	Package   string
	Median    time.Duration
}

func clusterFunc(algo petalcluster.Algorithm, x petalcluster.Matrix, accelerate bool) func() {
	switch algo {
	case petalcluster.AlgorithmDBSCAN:
		return func() { petalcluster.DBSCAN(x, benchEps, benchMinSamples, "euclidean") }
	case petalcluster.AlgorithmOPTICS:
		return func() { petalcluster.OPTICS(x, benchEps, benchMinSamples, "euclidean") }
	default:
		return func() {
			petalcluster.HDBSCAN(x, petalcluster.HDBSCANOptions{
				Alpha:           1,
				MinSamples:      benchMinSamples,
				MinClusterSize:  benchMinClusterSize,
				Metric:          "euclidean",
				UseAcceleration: accelerate,
			})
		}
	}
}

func run(ctx context.Context, cfg config) ([]resultRow, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.Named("bench")

	var rows []resultRow
	for _, d := range cfg.Dims {
		paths, err := findDatasets(cfg.DataDir, d)
		if err != nil {
			return nil, err
		}
		var sets []dataset
		for _, p := range paths {
			ds, err := loadDataset(p)
			if err != nil {
				return nil, err
			}
			sets = append(sets, ds)
		}
		slices.SortFunc(sets, func(a, b dataset) int { return a.X.Rows - b.X.Rows })
		log.Info("loaded datasets", zap.Int("dims", d), zap.Int("count", len(sets)))

		for _, algo := range cfg.Algorithms {
			pterm.DefaultSection.Printf("%s (d = %d)", strings.ToUpper(algo.String()), d)
			for _, ds := range sets {
				name := "n=" + humanize.Comma(int64(ds.X.Rows))
				t, err := median(ctx, clusterFunc(algo, ds.X, cfg.Accelerate), cfg.MinIters, cfg.MinTime)
				if err != nil {
					return nil, err
				}
				log.Debug("timed case",
					zap.Stringer("algorithm", algo),
					zap.String("dataset", name),
					zap.Int("dims", d),
					zap.Duration("median", t))
				pterm.Printf("  %s %s\n", pterm.Gray(name), pterm.LightGreen(fmt.Sprintf("%.4fs", t.Seconds())))
				rows = append(rows, resultRow{
					Algorithm: strings.ToUpper(algo.String()),
					Dataset:   name,
					N:         ds.X.Rows,
					Dims:      d,
					Package:   packageName,
					Median:    t,
				})
			}
		}
	}
	return rows, nil
}

func writeResults(path string, rows []resultRow) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "creating results directory")
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating results file")
	}
	if err := encodeResults(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encodeResults(w io.Writer, rows []resultRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"algorithm", "dataset", "n", "dims", "package", "median_s"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			r.Algorithm,
			r.Dataset,
			strconv.Itoa(r.N),
			strconv.Itoa(r.Dims),
			r.Package,
			strconv.FormatFloat(r.Median.Seconds(), 'g', -1, 64),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func renderTable(rows []resultRow) error {
	data := pterm.TableData{{"algorithm", "dataset", "dims", "median"}}
	for _, r := range rows {
		data = append(data, []string{r.Algorithm, r.Dataset, strconv.Itoa(r.Dims), fmt.Sprintf("%.4fs", r.Median.Seconds())})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
