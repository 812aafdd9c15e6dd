// Package batch applies a pipeline to many files concurrently.
package batch

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-linepipe/internal/selection"
)

var ErrConcurrency = errors.New("concurrency must be greater than 0")

// Executor runs a pipeline on lines. *pipeline.Runner implements it.
type Executor interface {
	Execute(lines []string) ([]string, error)
}

// Result is the outcome of a file.
type Result struct {
	Path string
	// Output is the transformed content. It is empty when the file was rewritten in place.
	Output  string
	Changed bool
}

type batch struct {
	concurrency int
	inPlace     bool
	region      selection.Region
	logger      *log.Logger
}

type Option func(b *batch)

// Concurrency sets the number of files processed at the same time.
func Concurrency(concurrency int) Option {
	return func(b *batch) {
		b.concurrency = concurrency
	}
}

// InPlace rewrites every changed file instead of returning its content.
func InPlace() Option {
	return func(b *batch) {
		b.inPlace = true
	}
}

// Region restricts the pipeline to the lines of region.
func Region(region selection.Region) Option {
	return func(b *batch) {
		b.region = region
	}
}

func Logger(logger *log.Logger) Option {
	return func(b *batch) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Transform runs exec on the lines of region in text and returns the new text.
func Transform(exec Executor, text string, region selection.Region) (string, error) {
	doc := selection.Split(text)

	lines, err := doc.Select(region)
	if err != nil {
		return "", err
	}

	out, err := exec.Execute(lines)
	if err != nil {
		return "", errors.Wrap(err, "unable to execute pipeline")
	}

	return doc.Replace(region, out)
}

// Run processes paths with exec. Results are in the order of paths.
// The first error stops the files not started yet.
func Run(ctx context.Context, exec Executor, paths []string, opts ...Option) ([]Result, error) {
	b := &batch{
		concurrency: 1,
		logger:      log.New(io.Discard, "", 0),
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.concurrency < 1 {
		return nil, ErrConcurrency
	}

	results := make([]Result, len(paths))

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(b.concurrency)

	for idx, path := range paths {
		errGrp.Go(func() error {
			if err := dCtx.Err(); err != nil {
				return errors.Wrapf(err, "file %s", path)
			}

			res, err := b.processFile(exec, path)
			if err != nil {
				return errors.Wrapf(err, "file %s", path)
			}

			results[idx] = res

			return nil
		})
	}

	err := errGrp.Wait()
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (b *batch) processFile(exec Executor, path string) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, errors.Wrap(err, "unable to stat")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Result{}, errors.Wrap(err, "unable to read")
	}

	text := string(content)

	out, err := Transform(exec, text, b.region)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Path:    path,
		Changed: out != text,
	}

	b.logger.Printf("%s: changed=%t", path, res.Changed)

	if !b.inPlace {
		res.Output = out

		return res, nil
	}

	if !res.Changed {
		return res, nil
	}

	err = os.WriteFile(path, []byte(out), info.Mode().Perm())
	if err != nil {
		return Result{}, errors.Wrap(err, "unable to write")
	}

	return res, nil
}
