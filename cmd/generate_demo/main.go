// Command generate_demo creates a demo Kobo database with sample highlights
// from public domain books.
// Usage: go run cmd/generate_demo/main.go [-db path/to/KoboReader.sqlite]
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/mrlokans/kobo-highlights/internal/demo"
)

const defaultDemoDatabasePath = "./demo/KoboReader.sqlite"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create demo directory: %v", err)
	}

	books, bookmarks, err := demo.Generate(*dbPath)
	if err != nil {
		log.Fatalf("Failed to generate demo database: %v", err)
	}

	log.Printf("Seeded %d books with %d bookmarks", books, bookmarks)
	log.Println("Demo database generated successfully!")
}
