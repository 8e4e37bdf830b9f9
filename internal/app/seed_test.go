package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yungbote/addressbook-backend/internal/data/repos"
	"github.com/yungbote/addressbook-backend/internal/data/repos/testutil"
	"github.com/yungbote/addressbook-backend/internal/services"
)

const seedYAML = `contacts:
  - name: Alice Tan
    email: alice@example.com
    phoneNumber: "91234567"
    dateOfBirth: 05-01-1990
  - name: X
    dateOfBirth: 01-01-2000
  - name: Bob Lim
    dateOfBirth: 01-02-1980
`

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestLoadSeed(t *testing.T) {
	inputs, err := LoadSeed(writeSeed(t, seedYAML))
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	if len(inputs) != 3 {
		t.Fatalf("LoadSeed: got %d inputs", len(inputs))
	}
	if inputs[0].PhoneNumber != "91234567" || inputs[0].DateOfBirth != "05-01-1990" {
		t.Fatalf("LoadSeed: unexpected %+v", inputs[0])
	}

	if _, err := LoadSeed(writeSeed(t, "contacts: [")); err == nil {
		t.Fatalf("LoadSeed(bad yaml): expected error")
	}
	if _, err := LoadSeed(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("LoadSeed(missing): expected error")
	}
}

func TestSeedSkipsInvalid(t *testing.T) {
	log := testutil.Logger(t)
	repo := repos.NewContactRepo(testutil.MemStore(t), log)
	svc := services.NewContactService(log, repo)

	inputs, err := LoadSeed(writeSeed(t, seedYAML))
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	n, err := Seed(context.Background(), log, svc, inputs)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if n != 2 {
		t.Fatalf("Seed: created=%d want=2", n)
	}
	list, err := repo.FindAll(context.Background(), 0)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Bob Lim" {
		t.Fatalf("FindAll: unexpected %+v", list)
	}
}

func TestSeedSkipsNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	log := testutil.Logger(t)
	repo := repos.NewContactRepo(testutil.MemStore(t), log)
	svc := services.NewContactService(log, repo)

	inputs, err := LoadSeed(writeSeed(t, seedYAML))
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	if _, err := Seed(ctx, log, svc, inputs); err != nil {
		t.Fatalf("Seed(first): %v", err)
	}
	// Second boot against the same store.
	n, err := Seed(ctx, log, svc, inputs)
	if err != nil {
		t.Fatalf("Seed(second): %v", err)
	}
	if n != 0 {
		t.Fatalf("Seed(second): created=%d want=0", n)
	}
	total, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if total != 2 {
		t.Fatalf("Count: got %d want 2", total)
	}
}
