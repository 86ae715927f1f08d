// Package seeders provides a registry of database seed functions.
//
// Define a seeder in any file in this package:
//
//	func init() {
//	    seeders.Register("admin", SeedAdmin)
//	}
//
// Then run via CLI: foodnest db:seed
package seeders

import (
	"context"
	"fmt"
	"sync"

	"github.com/foodnest/foodnest/pkg/database"
)

// SeederFunc is the signature for a seed function.
type SeederFunc func(ctx context.Context, db *database.DB) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder to the global registry.
// Call this from init() in your seeder files.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// RunAll executes every registered seeder in registration order.
// It stops on the first error.
func RunAll(ctx context.Context, db *database.DB) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	if len(current) == 0 {
		fmt.Println("  (no seeders registered)")
		return nil
	}

	for _, e := range current {
		fmt.Printf("  • Running seeder: %s … ", e.name)
		if err := e.fn(ctx, db); err != nil {
			fmt.Println("FAILED")
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
		fmt.Println("done")
	}
	return nil
}
