// Command bikeshare runs the statistics pipeline from the terminal and manages
// the Postgres trip store.
//
//	bikeshare stats --city chicago --month june
//	bikeshare raw --city washington --start-index 10
//	bikeshare migrate
//	bikeshare import --city "new york city" --file data/new_york_city.csv
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
