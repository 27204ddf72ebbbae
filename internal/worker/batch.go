package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/textprobe/internal/model"
)

// Analyzer analyzes one document reference (a path or URL)
type Analyzer interface {
	AnalyzeRef(ctx context.Context, ref string) (*model.Report, error)
}

// AnalyzeJob analyzes one reference
type AnalyzeJob struct {
	Index    int
	Ref      string
	Analyzer Analyzer
	Limiter  *Limiter
}

// Execute runs the analysis, waiting on the host limiter for URL refs
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	start := time.Now()
	res := &JobResult{Index: j.Index, Ref: j.Ref}

	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Ref); err != nil {
			res.Error = fmt.Errorf("rate limit: %w", err)
			return res
		}
	}

	res.Report, res.Error = j.Analyzer.AnalyzeRef(ctx, j.Ref)
	res.Elapsed = time.Since(start)
	return res
}

// JobResult is the outcome of one reference
type JobResult struct {
	Index   int
	Ref     string
	Report  *model.Report
	Error   error
	Elapsed time.Duration
}

// GetError returns the analysis error
func (r *JobResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes many references concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// WithLimiter rate-limits URL references per host
func (b *BatchProcessor) WithLimiter(l *Limiter) *BatchProcessor {
	b.limiter = l
	return b
}

// ProcessRefs analyzes refs and returns results in input order
func (b *BatchProcessor) ProcessRefs(ctx context.Context, refs []string) []*JobResult {
	if len(refs) == 0 {
		return []*JobResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	out := make([]*JobResult, 0, len(refs))
	done := make(map[int]bool, len(refs))
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for r := range pool.Results() {
			jr := r.(*JobResult)
			done[jr.Index] = true
			out = append(out, jr)
		}
	}()

	for i, ref := range refs {
		if !pool.Submit(&AnalyzeJob{Index: i, Ref: ref, Analyzer: b.analyzer, Limiter: b.limiter}) {
			break
		}
	}
	pool.Close()
	<-collected

	// Refs that never ran (cancelled before or during their turn)
	for i, ref := range refs {
		if !done[i] {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			out = append(out, &JobResult{Index: i, Ref: ref, Error: err})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// ProcessFile reads references from a file and processes them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*JobResult, error) {
	refs, err := ReadRefsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read refs: %w", err)
	}
	return b.ProcessRefs(ctx, refs), nil
}

// ReadRefsFromFile reads one path or URL per line, skipping blanks and
// '#' comments. Duplicates keep their first position.
func ReadRefsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var refs []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			refs = append(refs, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return refs, nil
}

// Summary tallies a finished batch
type Summary struct {
	Documents int
	Succeeded int
	Failed    int
	Sentences int
	HighRisk  int
	Suspect   int
	OK        int
}

// Summarize totals the sentence counts of the successful results
func Summarize(results []*JobResult) Summary {
	s := Summary{Documents: len(results)}
	for _, r := range results {
		if r.Error != nil || r.Report == nil {
			s.Failed++
			continue
		}
		s.Succeeded++
		s.Sentences += r.Report.Summary.Total
		s.HighRisk += r.Report.Summary.HighRisk
		s.Suspect += r.Report.Summary.Suspect
		s.OK += r.Report.Summary.OK
	}
	return s
}
