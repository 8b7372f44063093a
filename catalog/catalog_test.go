package catalog

import (
	"errors"
	"testing"

	"github.com/darkfieldworks/lensing-simulator/model"
)

func TestCatalog_AddAndGet(t *testing.T) {
	c := NewCatalog()

	if err := c.AddEntry(&model.CatalogEntry{ID: 1, Redshift: 0.4}); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if err := c.AddEntry(&model.CatalogEntry{ID: 2, Redshift: 1.1}); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	e, err := c.Entry(1)
	if err != nil {
		t.Fatalf("Entry(1): %v", err)
	}
	if e.Redshift != 0.4 {
		t.Errorf("redshift = %g, want 0.4", e.Redshift)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}

	if _, err := c.Entry(99); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("Entry(99) err = %v, want ErrEntryNotFound", err)
	}
}

func TestCatalog_RejectsDuplicates(t *testing.T) {
	c := NewCatalog()
	if err := c.AddEntry(&model.CatalogEntry{ID: 7}); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if err := c.AddEntry(&model.CatalogEntry{ID: 7}); !errors.Is(err, ErrDuplicateEntry) {
		t.Fatalf("err = %v, want ErrDuplicateEntry", err)
	}
}

func TestCatalog_RejectsBadEntries(t *testing.T) {
	c := NewCatalog()
	if err := c.AddEntry(nil); !errors.Is(err, ErrBadEntry) {
		t.Errorf("AddEntry(nil) err = %v, want ErrBadEntry", err)
	}
	if err := c.AddEntry(&model.CatalogEntry{ID: 3, Redshift: -0.1}); !errors.Is(err, ErrBadEntry) {
		t.Errorf("negative redshift err = %v, want ErrBadEntry", err)
	}
}

func TestCatalog_EntriesKeepInsertionOrder(t *testing.T) {
	c := NewCatalog()
	for _, id := range []int64{5, 3, 9, 1} {
		if err := c.AddEntry(&model.CatalogEntry{ID: id}); err != nil {
			t.Fatalf("AddEntry(%d): %v", id, err)
		}
	}

	got := c.Entries()
	want := []int64{5, 3, 9, 1}
	if len(got) != len(want) {
		t.Fatalf("Entries = %d rows, want %d", len(got), len(want))
	}
	for i, e := range got {
		if e.ID != want[i] {
			t.Errorf("Entries[%d].ID = %d, want %d", i, e.ID, want[i])
		}
	}
}
