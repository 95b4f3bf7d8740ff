package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	bfrun "nickandperla.net/bfrun"
	bf "nickandperla.net/bfrun/brainfuck"
)

var toolConfigPath *string = flag.String("config", "./config.toml", "The config file for bfrun tools to use. Defaults to './config.toml'")

var cells *uint = flag.Uint("cells", bfrun.DEFAULT_CELL_COUNT, "Number of cells on the tape")
var extensible *bool = flag.Bool("extensible", false, "Allow the tape to grow when the pointer runs off the right edge")
var cellWidth *uint = flag.Uint("width", bf.DEFAULT_CELL_WIDTH, "Cell width in bits")
var maxSteps *uint = flag.Uint("max-steps", 0, "Abort after this many executed instructions. 0 means no limit")
var record *bool = flag.Bool("record", false, "Record the run in the ledger")

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: bfrun [flags] <program-path>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	toolConfig, err := bfrun.LoadToolConfig(*toolConfigPath)
	if err != nil {
		log.Fatalf("Unable to load bfrun config: %v", err)
	}

	runConfig := toolConfig.Run.Clone()
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "cells":
			runConfig.Cells = *cells
		case "extensible":
			runConfig.Extensible = *extensible
		case "width":
			runConfig.CellWidth = *cellWidth
		case "max-steps":
			runConfig.MaxInstructionExecutionCount = *maxSteps
		}
	})
	if err := runConfig.Validate(); err != nil {
		log.Fatalf("Invalid run config: %v", err)
	}

	program, err := bf.LoadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	runner := bfrun.NewRunner(runConfig)
	report, runErr := runner.Run(program, os.Stdin, os.Stdout)

	if *record {
		persist, err := bfrun.NewPersistence(toolConfig.Persistence)
		if err != nil {
			log.Fatalf("Failed to create or initialize Persistence: %v", err)
		}
		_, err = persist.CreateReport(report)
		persist.Shutdown()
		if err != nil {
			log.Fatalf("Failed to record run: %v", err)
		}
	}

	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		os.Exit(1)
	}
}
