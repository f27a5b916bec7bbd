// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package store

import (
	"context"
	"errors"
	"testing"
)

var testUnique = map[string]string{"users": "email"}

// runContract exercises the Collection behaviour every backend must share.
func runContract(t *testing.T, open func(t *testing.T) Store) {
	t.Helper()

	t.Run("InsertAndFindInOrder", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		c := s.Collection("recommendations")

		for i, email := range []string{"a@x.com", "b@x.com", "a@x.com"} {
			id, err := c.InsertOne(ctx, Document{"email": email, "seq": i})
			if err != nil {
				t.Fatalf("InsertOne: %v", err)
			}
			if id == "" {
				t.Fatal("InsertOne returned empty id")
			}
		}

		docs, err := c.Find(ctx, Filter{"email": "a@x.com"})
		if err != nil {
			t.Fatalf("Find: %v", err)
		}
		if len(docs) != 2 {
			t.Fatalf("Find returned %d docs, want 2", len(docs))
		}
		for i, want := range []float64{0, 2} {
			got, _ := toFloat(docs[i]["seq"])
			if got != want {
				t.Errorf("docs[%d].seq = %v, want %v", i, docs[i]["seq"], want)
			}
			if _, ok := docs[i][IDField]; ok {
				t.Errorf("docs[%d] leaked %s", i, IDField)
			}
		}

		all, err := c.Find(ctx, Filter{})
		if err != nil {
			t.Fatalf("Find(all): %v", err)
		}
		if len(all) != 3 {
			t.Errorf("Find(all) returned %d docs, want 3", len(all))
		}
	})

	t.Run("FindEmpty", func(t *testing.T) {
		s := open(t)
		docs, err := s.Collection("recommendations").Find(context.Background(), Filter{"email": "nobody"})
		if err != nil {
			t.Fatalf("Find: %v", err)
		}
		if docs == nil || len(docs) != 0 {
			t.Errorf("Find = %#v, want empty non-nil slice", docs)
		}
	})

	t.Run("FindOneNotFound", func(t *testing.T) {
		s := open(t)
		_, err := s.Collection("users").FindOne(context.Background(), Filter{"email": "ghost@x.com"})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("FindOne error = %v, want ErrNotFound", err)
		}
	})

	t.Run("NestedDocumentsRoundTrip", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		c := s.Collection("recommendations")

		_, err := c.InsertOne(ctx, Document{
			"email": "n@x.com",
			"recommendation": map[string]interface{}{
				"breakfast": map[string]interface{}{"name": "Oats (Breakfast)", "image": "u1"},
			},
		})
		if err != nil {
			t.Fatalf("InsertOne: %v", err)
		}

		doc, err := c.FindOne(ctx, Filter{"email": "n@x.com"})
		if err != nil {
			t.Fatalf("FindOne: %v", err)
		}
		rec := asMap(doc["recommendation"])
		if rec == nil {
			t.Fatalf("recommendation = %#v, want map", doc["recommendation"])
		}
		bf := asMap(rec["breakfast"])
		if bf == nil || bf["name"] != "Oats (Breakfast)" {
			t.Errorf("breakfast = %#v", rec["breakfast"])
		}
	})

	t.Run("UniqueField", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		users := s.Collection("users")

		if _, err := users.InsertOne(ctx, Document{"email": "u@x.com", "name": "U"}); err != nil {
			t.Fatalf("InsertOne: %v", err)
		}
		_, err := users.InsertOne(ctx, Document{"email": "u@x.com", "name": "Again"})
		if !errors.Is(err, ErrDuplicate) {
			t.Errorf("second InsertOne error = %v, want ErrDuplicate", err)
		}

		// other collections are unconstrained
		recs := s.Collection("recommendations")
		for i := 0; i < 2; i++ {
			if _, err := recs.InsertOne(ctx, Document{"email": "u@x.com"}); err != nil {
				t.Fatalf("recommendations InsertOne: %v", err)
			}
		}
	})

	t.Run("UpdateOne", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		users := s.Collection("users")

		if _, err := users.InsertOne(ctx, Document{"email": "p@x.com", "name": "P", "weight": 70.0}); err != nil {
			t.Fatalf("InsertOne: %v", err)
		}

		n, err := users.UpdateOne(ctx, Filter{"email": "p@x.com"}, Document{"weight": 72.5})
		if err != nil || n != 1 {
			t.Fatalf("UpdateOne = %d, %v; want 1, nil", n, err)
		}

		doc, err := users.FindOne(ctx, Filter{"email": "p@x.com"})
		if err != nil {
			t.Fatalf("FindOne: %v", err)
		}
		if w, _ := toFloat(doc["weight"]); w != 72.5 {
			t.Errorf("weight = %v, want 72.5", doc["weight"])
		}
		if doc["name"] != "P" {
			t.Errorf("name = %v, untouched field changed", doc["name"])
		}

		n, err = users.UpdateOne(ctx, Filter{"email": "p@x.com"}, Document{"weight": 72.5})
		if err != nil || n != 0 {
			t.Errorf("no-op UpdateOne = %d, %v; want 0, nil", n, err)
		}

		n, err = users.UpdateOne(ctx, Filter{"email": "missing@x.com"}, Document{"weight": 1.0})
		if err != nil || n != 0 {
			t.Errorf("unmatched UpdateOne = %d, %v; want 0, nil", n, err)
		}
	})

	t.Run("UpdateOneDuplicate", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		users := s.Collection("users")

		_, _ = users.InsertOne(ctx, Document{"email": "one@x.com"})
		_, _ = users.InsertOne(ctx, Document{"email": "two@x.com"})

		_, err := users.UpdateOne(ctx, Filter{"email": "two@x.com"}, Document{"email": "one@x.com"})
		if !errors.Is(err, ErrDuplicate) {
			t.Errorf("UpdateOne error = %v, want ErrDuplicate", err)
		}
	})

	t.Run("Ping", func(t *testing.T) {
		s := open(t)
		if err := s.Ping(context.Background()); err != nil {
			t.Errorf("Ping: %v", err)
		}
	})
}

func TestMemory_Contract(t *testing.T) {
	runContract(t, func(t *testing.T) Store {
		return NewMemory(testUnique)
	})
}

func TestBadger_Contract(t *testing.T) {
	runContract(t, func(t *testing.T) Store {
		s := newTestBadger(t)
		return s
	})
}

func TestMemory_ClosedStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := NewMemory(nil)
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Ping(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Ping after Close = %v, want ErrClosed", err)
	}
	if _, err := s.Collection("x").InsertOne(ctx, Document{"a": 1}); !errors.Is(err, ErrClosed) {
		t.Errorf("InsertOne after Close = %v, want ErrClosed", err)
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := NewMemory(nil).Collection("c")
	in := Document{"nested": map[string]interface{}{"k": "v"}}
	if _, err := c.InsertOne(ctx, in); err != nil {
		t.Fatalf("InsertOne: %v", err)
	}
	in["nested"].(map[string]interface{})["k"] = "mutated"

	out, err := c.FindOne(ctx, Filter{})
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if got := asMap(out["nested"])["k"]; got != "v" {
		t.Errorf("stored document changed through caller map: %v", got)
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	t.Parallel()
	_, err := Open(context.Background(), Config{Backend: "cassandra"}, testLogger())
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestOpen_MemoryIsInstrumented(t *testing.T) {
	t.Parallel()
	s, err := Open(context.Background(), Config{Backend: BackendMemory}, testLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := s.(*Instrumented); !ok {
		t.Errorf("Open returned %T, want *Instrumented", s)
	}
	if s.Backend() != BackendMemory {
		t.Errorf("Backend() = %q", s.Backend())
	}
}
