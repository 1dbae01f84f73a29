package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/justyntemme/photominer/internal/app"
	"github.com/justyntemme/photominer/internal/config"
)

func main() {
	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	genConfig := flag.Bool("generate-config", false, "Back up the current config and write a default one")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [directory...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *genConfig {
		path := config.ConfigPath()
		backup, err := config.GenerateConfig(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if backup != "" {
			fmt.Printf("Backed up previous config to %s\n", backup)
		}
		fmt.Printf("Wrote default config to %s\n", path)
		return
	}

	// Handle OS-specific console visibility
	manageConsole(*debug)

	// Directories given on the command line are loaded as if dropped
	app.Main(*debug, flag.Args())
}
