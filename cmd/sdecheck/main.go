// Command sdecheck is a tiny connectivity smoke test for the static
// data store: open it, look up one known type/attribute/effect, and
// report success. Useful before standing up cmd/api against a new SDE
// export.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Sternrassler/eve-attrengine/internal/sde"
)

func main() {
	var (
		sqlitePath = flag.String("sqlite", "", "path to a SQLite SDE database")
		pgDSN      = flag.String("postgres", "", "Postgres DSN for the SDE database (mutually exclusive with -sqlite)")
		typeID     = flag.Int64("type", 648, "item type id to look up (default: Badger)")
		attrID     = flag.Int64("attr", sde.AttributeHighSlots, "attribute id to look up")
		effectID   = flag.Int64("effect", 0, "effect id to look up (0 skips the effect check)")
	)
	flag.Parse()

	if *sqlitePath == "" && *pgDSN == "" {
		log.Fatal("sdecheck: one of -sqlite or -postgres is required")
	}
	if *sqlitePath != "" && *pgDSN != "" {
		log.Fatal("sdecheck: -sqlite and -postgres are mutually exclusive")
	}

	ctx := context.Background()
	var store sde.Store

	switch {
	case *sqlitePath != "":
		if _, err := os.Stat(*sqlitePath); os.IsNotExist(err) {
			log.Fatalf("sdecheck: database not found: %s", *sqlitePath)
		}
		s, err := sde.OpenSQLiteStore(*sqlitePath)
		if err != nil {
			log.Fatalf("sdecheck: opening sqlite store: %v", err)
		}
		store = s
	case *pgDSN != "":
		s, err := sde.OpenPostgresStore(ctx, *pgDSN)
		if err != nil {
			log.Fatalf("sdecheck: opening postgres store: %v", err)
		}
		store = s
	}

	fmt.Println("=== SDE connectivity check ===")

	it, err := store.ItemType(ctx, *typeID)
	if err != nil {
		log.Fatalf("✗ item type %d: %v", *typeID, err)
	}
	fmt.Printf("✓ item type %d: group=%d category=%d attributes=%d effects=%d\n",
		*typeID, it.GroupID, it.CategoryID, len(it.Attributes), len(it.Effects))

	meta, err := store.Attribute(ctx, *attrID)
	if err != nil {
		log.Fatalf("✗ attribute %d: %v", *attrID, err)
	}
	fmt.Printf("✓ attribute %d: stackable=%v highIsGood=%v\n", *attrID, meta.Stackable, meta.HighIsGood)

	if *effectID != 0 {
		eff, err := store.Effect(ctx, *effectID)
		if err != nil {
			log.Fatalf("✗ effect %d: %v", *effectID, err)
		}
		fmt.Printf("✓ effect %d: category=%v modifiers=%d\n", *effectID, eff.Category, len(eff.Modifiers))
	}

	fmt.Println("=== all checks passed ===")
}
