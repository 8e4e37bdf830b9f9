package contact

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/yungbote/addressbook-backend/internal/data/kv"
	"github.com/yungbote/addressbook-backend/internal/data/repos/testutil"
	types "github.com/yungbote/addressbook-backend/internal/domain/contact"
)

func backends(t *testing.T) map[string]func(t *testing.T) kv.Store {
	return map[string]func(t *testing.T) kv.Store{
		"memory": func(t *testing.T) kv.Store { return testutil.MemStore(t) },
		"redis": func(t *testing.T) kv.Store {
			s, _ := testutil.RedisStore(t)
			return s
		},
	}
}

func TestContactRepoSaveAndFind(t *testing.T) {
	for name, newStore := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewContactRepo(newStore(t), testutil.Logger(t))
			ctx := context.Background()

			alice := testutil.AliceTan()
			if err := repo.Save(ctx, alice); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if len(alice.ID) != types.IDLength {
				t.Fatalf("Save: id %q has wrong length", alice.ID)
			}

			got, err := repo.FindByID(ctx, alice.ID)
			if err != nil {
				t.Fatalf("FindByID: %v", err)
			}
			if got.ID != alice.ID || got.Name != "Alice Tan" || got.Email != "alice@example.com" || got.PhoneNumber != "91234567" {
				t.Fatalf("FindByID: unexpected %+v", got)
			}
			if !got.DateOfBirth.Equal(alice.DateOfBirth) {
				t.Fatalf("FindByID: dob=%v want=%v", got.DateOfBirth, alice.DateOfBirth)
			}
			if want := types.AgeAt(alice.DateOfBirth, time.Now()); got.Age != want {
				t.Fatalf("FindByID: age=%d want=%d", got.Age, want)
			}
		})
	}
}

func TestContactRepoFindByIDMiss(t *testing.T) {
	repo := NewContactRepo(testutil.MemStore(t), testutil.Logger(t))
	_, err := repo.FindByID(context.Background(), "ffffffff")
	if !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("FindByID: got=%v want ErrContactNotFound", err)
	}
}

func TestContactRepoFindAllNewestFirst(t *testing.T) {
	for name, newStore := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewContactRepo(newStore(t), testutil.Logger(t))
			ctx := context.Background()

			var saved []*types.Contact
			for i := 0; i < 7; i++ {
				c := testutil.AliceTan()
				c.Name = fmt.Sprintf("Contact %d", i)
				if err := repo.Save(ctx, c); err != nil {
					t.Fatalf("Save(%d): %v", i, err)
				}
				saved = append(saved, c)
			}

			got, err := repo.FindAll(ctx, 0)
			if err != nil {
				t.Fatalf("FindAll: %v", err)
			}
			if len(got) != len(saved) {
				t.Fatalf("FindAll: got %d contacts, want %d", len(got), len(saved))
			}
			for i, c := range got {
				want := saved[len(saved)-1-i]
				if c.ID != want.ID {
					t.Fatalf("FindAll[%d]: id=%s want=%s", i, c.ID, want.ID)
				}
			}
		})
	}
}

func TestContactRepoTwoSavesDistinctIDs(t *testing.T) {
	repo := NewContactRepo(testutil.MemStore(t), testutil.Logger(t))
	ctx := context.Background()

	first := testutil.AliceTan()
	second := testutil.AliceTan()
	second.Name = "Bob Lim"
	if first.ID == second.ID {
		t.Skipf("id collision %s; generator accepts this risk", first.ID)
	}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("Save second: %v", err)
	}
	got, err := repo.FindAll(ctx, 0)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(got) != 2 || got[0].ID != second.ID || got[1].ID != first.ID {
		t.Fatalf("FindAll: unexpected order %+v", got)
	}
}

func TestContactRepoFindAllWindow(t *testing.T) {
	repo := NewContactRepo(testutil.MemStore(t), testutil.Logger(t))
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		c := testutil.AliceTan()
		if err := repo.Save(ctx, c); err != nil {
			t.Fatalf("Save(%d): %v", i, err)
		}
	}
	cases := []struct {
		start int
		want  int
	}{
		{0, PageSize},
		{5, PageSize},
		{20, 5},
		{25, 0},
		{100, 0},
		{-3, PageSize},
	}
	for _, tc := range cases {
		got, err := repo.FindAll(ctx, tc.start)
		if err != nil {
			t.Fatalf("FindAll(%d): %v", tc.start, err)
		}
		if got == nil {
			t.Fatalf("FindAll(%d): expected empty slice, got nil", tc.start)
		}
		if len(got) != tc.want {
			t.Fatalf("FindAll(%d): got %d contacts, want %d", tc.start, len(got), tc.want)
		}
	}

	n, err := repo.Count(ctx)
	if err != nil || n != 25 {
		t.Fatalf("Count: got=%d err=%v", n, err)
	}
}

func TestContactRepoFindAllSkipsHolesAndGarbage(t *testing.T) {
	store, mr := testutil.RedisStore(t)
	repo := NewContactRepo(store, testutil.Logger(t))
	ctx := context.Background()

	alice := testutil.AliceTan()
	if err := repo.Save(ctx, alice); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// An id with no record, then a record that is not a contact.
	testutil.SeedContactIDs(t, ctx, store, ListKey, 1)
	if err := store.LPush(ctx, ListKey, "badc0ffe"); err != nil {
		t.Fatalf("LPush: %v", err)
	}
	mr.HSet(MapKey, "badc0ffe", "not json")

	got, err := repo.FindAll(ctx, 0)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(got) != 1 || got[0].ID != alice.ID {
		t.Fatalf("FindAll: expected only alice, got %+v", got)
	}
}

func TestContactRepoResaveDuplicatesListEntry(t *testing.T) {
	repo := NewContactRepo(testutil.MemStore(t), testutil.Logger(t))
	ctx := context.Background()

	alice := testutil.AliceTan()
	if err := repo.Save(ctx, alice); err != nil {
		t.Fatalf("Save: %v", err)
	}
	alice.Name = "Alice Tan Mei Ling"
	if err := repo.Save(ctx, alice); err != nil {
		t.Fatalf("Save again: %v", err)
	}

	got, err := repo.FindAll(ctx, 0)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("FindAll: expected the id twice, got %d entries", len(got))
	}
	for _, c := range got {
		if c.Name != "Alice Tan Mei Ling" {
			t.Fatalf("FindAll: stale record %+v", c)
		}
	}
}

func TestContactRepoSaveRequiresID(t *testing.T) {
	repo := NewContactRepo(testutil.MemStore(t), testutil.Logger(t))
	if err := repo.Save(context.Background(), &types.Contact{Name: "No Id"}); err == nil {
		t.Fatalf("Save: expected error for empty id")
	}
}

func TestContactRepoStoreFailure(t *testing.T) {
	store := testutil.MemStore(t)
	repo := NewContactRepo(store, testutil.Logger(t))
	_ = store.Close()
	if err := repo.Save(context.Background(), testutil.AliceTan()); !errors.Is(err, kv.ErrClosed) {
		t.Fatalf("Save: got=%v want ErrClosed", err)
	}
	if _, err := repo.FindAll(context.Background(), 0); !errors.Is(err, kv.ErrClosed) {
		t.Fatalf("FindAll: got=%v want ErrClosed", err)
	}
}
