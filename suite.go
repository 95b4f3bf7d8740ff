package bfrun

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const DEFAULT_SUITE_WORKERS = 4

// A SuiteResult couples one program with its run report and check outcome.
// Err is set when the program could not be run at all (unreadable file,
// validation failure, runtime error); Check is only set for runs that
// produced output to compare.
type SuiteResult struct {
	ProgramPath  string
	ExpectedPath string
	Report       *RunReport
	Check        *CheckResult
	Err          error
}

func (r *SuiteResult) Passed() bool {
	return r.Err == nil && r.Check != nil && r.Check.Match
}

// Suite runs every program in a directory against its expected output,
// spreading the work over a fixed pool of goroutines. Each run is
// independent: fresh machine, fresh tape.
type Suite struct {
	Runner  *Runner
	Workers uint
}

func NewSuite(runner *Runner, workers uint) *Suite {
	if workers == 0 {
		workers = DEFAULT_SUITE_WORKERS
	}
	return &Suite{Runner: runner, Workers: workers}
}

// RunDir checks every *.b and *.bf file under dir that has a sibling
// .expected file. A sibling .input file, when present, is fed to the
// program as its input stream. Results come back sorted by program path.
func (s *Suite) RunDir(ctx context.Context, dir string) ([]*SuiteResult, error) {
	programs, err := findPrograms(dir)
	if err != nil {
		return nil, err
	}

	input := make(chan string)
	output := make(chan *SuiteResult)

	var wg sync.WaitGroup
	for i := uint(0); i < s.Workers; i++ {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
		FOR:
			for {
				select {
				case path, ok := <-input:
					if !ok {
						if DEBUG {
							log.Printf("Closing suite worker %d", id)
						}
						break FOR
					}
					output <- s.checkOne(path)
				case <-ctx.Done():
					break FOR
				}
			}
		}(i)
	}

	go func() {
	FEED:
		for _, path := range programs {
			select {
			case input <- path:
			case <-ctx.Done():
				break FEED
			}
		}
		close(input)
		wg.Wait()
		close(output)
	}()

	results := []*SuiteResult{}
	for result := range output {
		results = append(results, result)
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].ProgramPath < results[j].ProgramPath
	})
	return results, nil
}

func (s *Suite) checkOne(path string) *SuiteResult {
	result := &SuiteResult{
		ProgramPath:  path,
		ExpectedPath: expectedPath(path),
	}

	expected, err := os.ReadFile(result.ExpectedPath)
	if err != nil {
		result.Err = fmt.Errorf("failed to read expected output: %w", err)
		return result
	}

	var input []byte
	if in, err := os.ReadFile(inputPath(path)); err == nil {
		input = in
	}

	var actual bytes.Buffer
	report, err := s.Runner.RunFile(path, bytes.NewReader(input), &actual)
	result.Report = report
	if err != nil {
		result.Err = err
		return result
	}

	result.Check = Check(expected, actual.Bytes())
	return result
}

func findPrograms(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite directory %q: %w", dir, err)
	}

	programs := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".b", ".bf":
			path := filepath.Join(dir, entry.Name())
			if _, err := os.Stat(expectedPath(path)); err != nil {
				if DEBUG {
					log.Printf("Skipping %q: no expected output", path)
				}
				continue
			}
			programs = append(programs, path)
		}
	}
	return programs, nil
}

func expectedPath(program string) string {
	return strings.TrimSuffix(program, filepath.Ext(program)) + ".expected"
}

func inputPath(program string) string {
	return strings.TrimSuffix(program, filepath.Ext(program)) + ".input"
}
