package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	bfrun "nickandperla.net/bfrun"
)

var toolConfigPath *string = flag.String("config", "./config.toml", "The config file for bfrun tools to use. Defaults to './config.toml'")

var suiteDir *string = flag.String("dir", "", "Check every *.b/*.bf program in this directory against its sibling .expected file")
var workers *uint = flag.Uint("workers", bfrun.DEFAULT_SUITE_WORKERS, "Worker goroutines for -dir mode")
var inputFile *string = flag.String("input", "", "File to feed the program as input. Defaults to empty input")
var record *bool = flag.Bool("record", false, "Record the run reports in the ledger")

func main() {
	flag.Parse()

	toolConfig, err := bfrun.LoadToolConfig(*toolConfigPath)
	if err != nil {
		log.Fatalf("Unable to load bfrun config: %v", err)
	}
	if err := toolConfig.Run.Validate(); err != nil {
		log.Fatalf("Invalid run config: %v", err)
	}
	runner := bfrun.NewRunner(toolConfig.Run)

	var persist *bfrun.Persistence
	if *record {
		if persist, err = bfrun.NewPersistence(toolConfig.Persistence); err != nil {
			log.Fatalf("Failed to create or initialize Persistence: %v", err)
		}
	}

	var code int
	if *suiteDir != "" {
		code = runSuite(runner, persist)
	} else {
		if flag.NArg() != 2 {
			fmt.Fprintln(os.Stderr, "usage: bfcheck [flags] <program-path> <expected-path>")
			flag.PrintDefaults()
			os.Exit(2)
		}
		code = runSingle(runner, persist, flag.Arg(0), flag.Arg(1))
	}

	if persist != nil {
		persist.Shutdown()
	}
	os.Exit(code)
}

func runSingle(runner *bfrun.Runner, persist *bfrun.Persistence, programPath, expectedPath string) int {
	expected, err := os.ReadFile(expectedPath)
	if err != nil {
		log.Fatalf("Unable to read expected output: %v", err)
	}

	var input []byte
	if *inputFile != "" {
		if input, err = os.ReadFile(*inputFile); err != nil {
			log.Fatalf("Unable to read input file: %v", err)
		}
	}

	var actual bytes.Buffer
	report, runErr := runner.RunFile(programPath, bytes.NewReader(input), &actual)
	recordReport(persist, report)
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		return 1
	}

	check := bfrun.Check(expected, actual.Bytes())
	fmt.Printf("%s: %s\n", programPath, check)
	if !check.Match {
		return 1
	}
	return 0
}

func runSuite(runner *bfrun.Runner, persist *bfrun.Persistence) int {
	suite := bfrun.NewSuite(runner, *workers)
	results, err := suite.RunDir(context.Background(), *suiteDir)
	if err != nil {
		log.Fatalf("Suite failed: %v", err)
	}

	failures := 0
	for _, result := range results {
		recordReport(persist, result.Report)
		switch {
		case result.Err != nil:
			failures++
			fmt.Printf("%s: error: %v\n", result.ProgramPath, result.Err)
		case result.Passed():
			fmt.Printf("%s: %s\n", result.ProgramPath, result.Check)
		default:
			failures++
			fmt.Printf("%s: %s\n", result.ProgramPath, result.Check)
		}
	}

	fmt.Printf("%d programs, %d failed\n", len(results), failures)
	if failures > 0 {
		return 1
	}
	return 0
}

func recordReport(persist *bfrun.Persistence, report *bfrun.RunReport) {
	if persist == nil || report == nil {
		return
	}
	if _, err := persist.CreateReport(report); err != nil {
		log.Printf("Failed to record run: %v", err)
	}
}
