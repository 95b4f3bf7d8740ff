package main

import (
	"flag"
	"fmt"
	"log"

	bfrun "nickandperla.net/bfrun"
)

var toolConfigPath *string = flag.String("config", "./config.toml", "The config file for bfrun tools to use. Defaults to './config.toml'")

var failureCount *int = flag.Int("failures", 10, "How many recent failures to list")

func main() {
	flag.Parse()

	toolConfig, err := bfrun.LoadToolConfig(*toolConfigPath)
	if err != nil {
		log.Fatalf("Unable to load bfrun config: %v", err)
	}

	persist, err := bfrun.NewPersistence(toolConfig.Persistence)
	if err != nil {
		log.Fatalf("Failed to create or initialize Persistence: %v", err)
	}
	defer persist.Shutdown()

	stats, err := persist.Stats()
	if err != nil {
		log.Fatalf("Failed to query ledger stats: %v", err)
	}
	fmt.Println(stats)

	if *failureCount > 0 {
		failures, err := persist.FailedReports(*failureCount)
		if err != nil {
			log.Fatalf("Failed to query recent failures: %v", err)
		}
		for _, report := range failures {
			reason := "unknown"
			if report.MachineError != nil {
				reason = *report.MachineError
			}
			fmt.Printf("%s %s: %s\n",
				report.CreatedAt.Format("2006-01-02 15:04:05"),
				report.ProgramPath, reason)
		}
	}
}
