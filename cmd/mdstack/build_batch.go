package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/alnah/go-mdstack"
	"github.com/alnah/go-mdstack/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// depthMarker is the text of the marker left where macro nesting was cut.
const depthMarker = "max macro depth exceeded"

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	PDFPath    string // set when a PDF was written
	Size       int    // bytes of HTML written
	Warnings   []string
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *buildParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))
	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				// Converter creation failed, mark remaining jobs as failed
				for idx := range jobs {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
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

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *buildParams) ConversionResult {
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

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("creating output directory: %w", err))
	}

	res, err := conv.Convert(ctx, mdstack.Input{
		Markdown:  string(content),
		SourceDir: filepath.Dir(f.InputPath),
		Title:     params.title,
		Lang:      params.lang,
		Date:      params.date,
		CSS:       params.css,
		PDF:       params.pdf,
		Page:      params.page,
	})
	if err != nil {
		return fail(err)
	}

	// #nosec G306 -- HTML files are meant to be readable
	if err := os.WriteFile(f.OutputPath, res.HTML, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}
	result.Size = len(res.HTML)

	if params.pdf {
		pdfPath := pdfOutputPath(f.OutputPath)
		// #nosec G306 -- PDFs are meant to be readable
		if err := os.WriteFile(pdfPath, res.PDF, filePermissions); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
		result.PDFPath = pdfPath
	}

	if n := strings.Count(res.Body, `class="macro-error"`); n > 0 {
		msg := fmt.Sprintf("%d macro error(s) left in the output", n)
		if strings.Contains(res.Body, depthMarker) {
			msg += hints.ForMacroDepth()
		}
		result.Warnings = append(result.Warnings, msg)
	}

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

// firstError returns the first conversion error, or nil.
func firstError(results []ConversionResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// printResults reports each conversion and returns the failure count.
// Warnings are printed even when quiet.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	green := color.New(color.FgGreen)

	for _, r := range results {
		if r.Err != nil {
			_, _ = red.Fprint(env.Stderr, "FAILED ")
			fmt.Fprintf(env.Stderr, "%s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}
		for _, w := range r.Warnings {
			_, _ = yellow.Fprint(env.Stderr, "WARNING ")
			fmt.Fprintf(env.Stderr, "%s: %s\n", r.InputPath, w)
		}

		if quiet {
			continue
		}

		outputs := r.OutputPath
		if r.PDFPath != "" {
			outputs += ", " + r.PDFPath
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%s, %v)\n", r.InputPath, outputs,
				humanize.Bytes(uint64(r.Size)), r.Duration.Round(time.Millisecond)) // #nosec G115 -- len is non-negative
		} else {
			_, _ = green.Fprint(env.Stdout, "Created ")
			fmt.Fprintln(env.Stdout, outputs)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
