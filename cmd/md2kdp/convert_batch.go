package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	md2kdp "github.com/alnah/go-md2kdp"
	"github.com/alnah/go-md2kdp/internal/fileutil"
	"github.com/alnah/go-md2kdp/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrReadManuscript   = errors.New("failed to read manuscript")
	ErrWriteDOCX        = errors.New("failed to write .docx file")
	ErrOutputDirectory  = errors.New("failed to create output directory")
	ErrConversionFailed = errors.New("conversion failed")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input md2kdp.Input) (*md2kdp.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*md2kdp.Converter)(nil)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Summary    md2kdp.Summary
	Collisions int
	Err        error
	Duration   time.Duration
}

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	defaults md2kdp.Metadata
	log      *zap.Logger
}

// convertBatch converts files with a bounded number of workers sharing one
// converter. Results keep the order of files.
func convertBatch(ctx context.Context, conv CLIConverter, workers int, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile compiles a single manuscript and writes its .docx package.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := fileutil.ReadManuscript(f.InputPath)
	if err != nil {
		if errors.Is(err, fileutil.ErrNotUTF8) {
			return fail(fmt.Errorf("%w: %w%s", ErrReadManuscript, err, hints.ForInputEncoding()))
		}
		return fail(fmt.Errorf("%w: %w", ErrReadManuscript, err))
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: %w%s", ErrOutputDirectory, err, hints.ForOutputDirectory()))
	}

	params.log.Debug("Converting manuscript", zap.String("input", f.InputPath), zap.String("output", f.OutputPath))
	convResult, err := conv.Convert(ctx, md2kdp.Input{
		Markdown: content,
		Defaults: params.defaults,
	})
	if err != nil {
		return fail(err)
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, convResult.DOCX, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %w", ErrWriteDOCX, err))
	}

	result.Summary = convResult.Summary
	result.Collisions = len(convResult.Collisions)
	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results and returns the first failure.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) error {
	summary := countResults(results)
	var firstErr error

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}

		if quiet {
			continue
		}

		counts := fmt.Sprintf("%d parts, %d chapters, %d paragraphs", r.Summary.Parts, r.Summary.Chapters, r.Summary.Paragraphs)
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%s; %v)\n", r.InputPath, r.OutputPath, counts, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s (%s)\n", r.OutputPath, counts)
		}
		if r.Collisions > 0 {
			fmt.Fprintf(env.Stderr, "WARNING %s: %d title(s) share an anchor with an earlier title and are not linked\n", r.InputPath, r.Collisions)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	if firstErr != nil {
		return fmt.Errorf("%w: %d of %d: %w", ErrConversionFailed, summary.Failed, len(results), firstErr)
	}
	return nil
}
