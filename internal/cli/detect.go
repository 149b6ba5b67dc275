package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/kobo-highlights/internal/kobo"
)

// DetectCommand scans mounted volumes for Kobo device databases
type DetectCommand struct {
	Quiet bool
}

// NewDetectCommand creates a new DetectCommand
func NewDetectCommand() *DetectCommand {
	return &DetectCommand{}
}

// ParseFlags parses command line flags
func (cmd *DetectCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("detect", flag.ExitOnError)

	fs.BoolVar(&cmd.Quiet, "quiet", false, "Print only the best candidate path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s detect [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Scan mounted volumes for a Kobo device database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # List all candidate databases:\n")
		fmt.Fprintf(os.Stderr, "  %s detect\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Feed the best candidate straight into export:\n")
		fmt.Fprintf(os.Stderr, "  %s export -db \"$(%s detect -quiet)\"\n", os.Args[0], os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the detect command
func (cmd *DetectCommand) Run() error {
	candidates := kobo.FindDatabases()
	if len(candidates) == 0 {
		if !cmd.Quiet {
			fmt.Println("ℹ️  No mounted Kobo device found")
		}
		return fmt.Errorf("no Kobo database found on mounted volumes")
	}

	best := kobo.ChooseBest(candidates)

	if cmd.Quiet {
		fmt.Println(best)
		return nil
	}

	fmt.Println("🔍 Kobo Device Detection")
	fmt.Println("========================")
	fmt.Printf("📚 Found %d candidate database(s):\n", len(candidates))
	for _, candidate := range candidates {
		if candidate == best {
			fmt.Printf("  ⭐ %s\n", candidate)
		} else {
			fmt.Printf("     %s\n", candidate)
		}
	}
	fmt.Printf("\nUse: %s export -db \"%s\"\n", os.Args[0], best)
	return nil
}
