package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	bfrun "nickandperla.net/bfrun"
)

var toolConfigPath *string = flag.String("config", "./config.toml", "The config file for bfrun tools to use. Defaults to './config.toml'")

var keep *uint = flag.Uint("keep", 0, "Keep only the newest N reports")
var days *uint = flag.Uint("days", 0, "Delete reports older than N days")

func main() {
	flag.Parse()

	if *keep == 0 && *days == 0 {
		fmt.Fprintln(os.Stderr, "usage: bfprune [-config F] -keep N | -days N")
		flag.PrintDefaults()
		os.Exit(2)
	}

	toolConfig, err := bfrun.LoadToolConfig(*toolConfigPath)
	if err != nil {
		log.Fatalf("Unable to load bfrun config: %v", err)
	}

	persist, err := bfrun.NewPersistence(toolConfig.Persistence)
	if err != nil {
		log.Fatalf("Failed to create or initialize Persistence: %v", err)
	}
	defer persist.Shutdown()

	if *days > 0 {
		cutoff := time.Now().AddDate(0, 0, -int(*days))
		deleted, err := persist.PruneOlderThan(cutoff)
		if err != nil {
			log.Fatalf("Failed to prune by age: %v", err)
		}
		fmt.Printf("Deleted %d reports older than %s\n", deleted, cutoff.Format("2006-01-02"))
	}

	if *keep > 0 {
		deleted, err := persist.PruneKeepLatest(*keep)
		if err != nil {
			log.Fatalf("Failed to prune by count: %v", err)
		}
		fmt.Printf("Deleted %d reports, kept the newest %d\n", deleted, *keep)
	}
}
