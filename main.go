package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mrlokans/kobo-highlights/internal/cli"
	"github.com/mrlokans/kobo-highlights/internal/config"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// Bare invocation runs the exporter with config defaults
	if len(os.Args) < 2 {
		runExport(nil)
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "export":
		runExport(args)

	case "detect":
		cmd := cli.NewDetectCommand()
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "version":
		fmt.Printf("kobo-highlights %s (%s)\n", Version, Commit)

	case "-h", "--help", "help":
		printUsage()

	default:
		// Treat a leading flag as shorthand for the export command
		if strings.HasPrefix(command, "-") {
			runExport(os.Args[1:])
			return
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runExport(args []string) {
	cfg := config.NewConfig()
	cmd := cli.NewExportCommand(cfg)
	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  export   Export highlights to CSV and markdown (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  detect   Scan mounted volumes for a Kobo device database\n")
	fmt.Fprintf(os.Stderr, "  version  Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
