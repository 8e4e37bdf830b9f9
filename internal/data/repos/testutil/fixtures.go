package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/yungbote/addressbook-backend/internal/data/kv"
	types "github.com/yungbote/addressbook-backend/internal/domain/contact"
)

// AliceTan is the reference contact used across repo and handler tests.
func AliceTan() *types.Contact {
	return types.NewContactWithID(
		types.DefaultIDGenerator.NewID(),
		"Alice Tan",
		"alice@example.com",
		"91234567",
		time.Date(1990, time.May, 1, 0, 0, 0, 0, time.Local),
	)
}

// SeedContactIDs pushes n ids onto list without records, newest last.
func SeedContactIDs(tb testing.TB, ctx context.Context, s kv.Store, list string, n int) []string {
	tb.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%08x", i)
		if err := s.LPush(ctx, list, id); err != nil {
			tb.Fatalf("seed contact id: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}
