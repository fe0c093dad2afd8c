package jobs

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/klytics/stallkit/internal/formats/convert"
)

// ConvertFunc runs one conversion. convert.ExcelToText satisfies it.
type ConvertFunc func(inputPath, outputDir string, opts convert.Options) (*convert.Result, error)

// Result is the outcome of one job.
type Result struct {
	JobID  string          `json:"jobId"`
	Result *convert.Result `json:"result,omitempty"`
	Err    error           `json:"-"`
	Error  string          `json:"error,omitempty"`
}

// Runner executes the jobs of a File one after another.
type Runner struct {
	Convert ConvertFunc
	Logger  *zap.Logger

	// Base is copied into every job's options; Sheet is overridden per job.
	Base convert.Options

	// OutputDir is used when neither the job nor the file sets output_dir.
	OutputDir string

	// Now is used for ${{ date.today }}; defaults to time.Now.
	Now func() time.Time

	// OnDone, when set, is called after every attempted job.
	OnDone func(Result)
}

// NewRunner returns a runner that converts with convert.ExcelToText.
func NewRunner(base convert.Options, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{Base: base, Convert: convert.ExcelToText, Logger: logger, Now: time.Now}
}

// Run converts every job in order. It stops at the first failure unless that
// job sets on_failure: continue, and checks ctx between jobs. The returned
// slice holds a Result for every job that was attempted.
func (r *Runner) Run(ctx context.Context, f *File) ([]Result, error) {
	var results []Result

	for i, job := range f.Jobs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		input := r.interpolate(job.Input)
		outDir := r.interpolate(job.OutputDir)
		if outDir == "" {
			outDir = r.interpolate(f.OutputDir)
		}
		if outDir == "" {
			outDir = r.interpolate(r.OutputDir)
		}

		opts := r.Base
		if job.Sheet != "" {
			opts.Sheet = job.Sheet
		}

		log := r.Logger.With(zap.String("job", job.ID))
		log.Info("running job", zap.Int("index", i+1), zap.Int("total", len(f.Jobs)), zap.String("input", input), zap.String("output_dir", outDir))

		var res *convert.Result
		var err error
		if outDir == "" {
			err = fmt.Errorf("job %q has no output_dir and neither the file nor the config sets one", job.ID)
		} else {
			res, err = r.Convert(input, outDir, opts)
		}
		jr := Result{JobID: job.ID, Result: res, Err: err}
		if err != nil {
			jr.Error = err.Error()
		}
		results = append(results, jr)
		if r.OnDone != nil {
			r.OnDone(jr)
		}

		if err != nil {
			if job.OnFailure == OnFailureContinue {
				log.Warn("job failed, continuing", zap.Error(err))
				continue
			}
			return results, fmt.Errorf("job %q failed: %w", job.ID, err)
		}
	}

	return results, nil
}

var interpolationPattern = regexp.MustCompile(`\$\{\{\s*([^}]+?)\s*\}\}`)

// interpolate expands ${{ env.NAME }} and ${{ date.today }} in job paths.
func (r *Runner) interpolate(s string) string {
	return interpolationPattern.ReplaceAllStringFunc(s, func(match string) string {
		expr := interpolationPattern.FindStringSubmatch(match)[1]

		switch {
		case expr == "date.today":
			now := time.Now
			if r.Now != nil {
				now = r.Now
			}
			return now().Format("2006-01-02")
		case strings.HasPrefix(expr, "env."):
			return os.Getenv(strings.TrimPrefix(expr, "env."))
		}
		return match
	})
}
