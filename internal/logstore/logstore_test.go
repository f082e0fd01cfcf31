package logstore

import (
	"errors"
	"testing"

	"health_tracker/internal/entry"
	"health_tracker/internal/storage"
)

type failingBackend struct {
	*storage.Memory
	failGet bool
	failSet bool
}

func (f *failingBackend) Get(key string) ([]byte, bool, error) {
	if f.failGet {
		return nil, false, errors.New("disk on fire")
	}
	return f.Memory.Get(key)
}

func (f *failingBackend) Set(key string, value []byte) error {
	if f.failSet {
		return errors.New("quota exceeded")
	}
	return f.Memory.Set(key, value)
}

func sample(weight string) entry.Entry {
	return entry.Entry{
		Weight:         weight,
		Exercise:       "30",
		Sleep:          "8",
		Water:          "2",
		HeartRate:      "60",
		BloodPressure:  "120/80",
		BloodSugar:     "90",
		CaloriesBurned: "500",
		Date:           "2026-10-19",
	}
}

func weights(s *Store) []string {
	var out []string
	for _, e := range s.All() {
		out = append(out, e.Weight)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAppendReplaceDelete(t *testing.T) {
	s := New(storage.NewMemory())

	for _, w := range []string{"70", "71", "72"} {
		if err := s.Append(sample(w)); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	if got := weights(s); !equal(got, []string{"70", "71", "72"}) {
		t.Fatalf("expected insertion order, got %v", got)
	}

	t.Run("ReplaceKeepsPosition", func(t *testing.T) {
		if err := s.ReplaceAt(1, sample("99")); err != nil {
			t.Fatalf("ReplaceAt failed: %v", err)
		}
		if got := weights(s); !equal(got, []string{"70", "99", "72"}) {
			t.Errorf("expected replaced entry in place, got %v", got)
		}
	})

	t.Run("DeleteShiftsDown", func(t *testing.T) {
		if err := s.DeleteAt(0); err != nil {
			t.Fatalf("DeleteAt failed: %v", err)
		}
		if got := weights(s); !equal(got, []string{"99", "72"}) {
			t.Errorf("expected remaining entries shifted down, got %v", got)
		}
	})

	t.Run("At", func(t *testing.T) {
		e, err := s.At(1)
		if err != nil {
			t.Fatalf("At failed: %v", err)
		}
		if e.Weight != "72" {
			t.Errorf("expected weight 72, got %s", e.Weight)
		}
	})
}

func TestIndexErrors(t *testing.T) {
	s := New(storage.NewMemory())
	if err := s.Append(sample("70")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		op   func() error
	}{
		{"replace past end", func() error { return s.ReplaceAt(1, sample("1")) }},
		{"replace negative", func() error { return s.ReplaceAt(-1, sample("1")) }},
		{"delete past end", func() error { return s.DeleteAt(5) }},
		{"get past end", func() error { _, err := s.At(1); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op()
			if !errors.Is(err, ErrIndex) {
				t.Fatalf("expected ErrIndex, got %v", err)
			}
			var ie *IndexError
			if !errors.As(err, &ie) {
				t.Fatalf("expected *IndexError, got %T", err)
			}
			if ie.Len != 1 {
				t.Errorf("expected Len=1, got %d", ie.Len)
			}
			if got := weights(s); !equal(got, []string{"70"}) {
				t.Errorf("expected store unchanged, got %v", got)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	backend := storage.NewMemory()

	s := New(backend)
	for _, w := range []string{"70", "abc", "72"} {
		if err := s.Append(sample(w)); err != nil {
			t.Fatal(err)
		}
	}

	restarted := New(backend)
	if err := restarted.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	before, after := s.All(), restarted.All()
	if len(before) != len(after) {
		t.Fatalf("expected %d entries after reload, got %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("entry %d differs after reload: %+v vs %+v", i, before[i], after[i])
		}
	}
}

func TestLoadTolerant(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
	}{
		{name: "missing"},
		{name: "empty", value: "", set: true},
		{name: "null", value: "null", set: true},
		{name: "malformed", value: "[{", set: true},
		{name: "wrong shape", value: `{"weight":"70"}`, set: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := storage.NewMemory()
			if tt.set {
				backend.Set(DefaultKey, []byte(tt.value))
			}

			s := New(backend)
			s.entries = []entry.Entry{sample("stale")}
			if err := s.Load(); err != nil {
				t.Fatalf("Load should swallow bad data, got %v", err)
			}
			if s.Len() != 0 {
				t.Errorf("expected empty log, got %d entries", s.Len())
			}
		})
	}
}

func TestLoadBackendError(t *testing.T) {
	s := New(&failingBackend{Memory: storage.NewMemory(), failGet: true})
	if err := s.Load(); err == nil {
		t.Fatal("expected backend read failure to be returned")
	}
}

func TestFailedSaveKeepsMemory(t *testing.T) {
	backend := &failingBackend{Memory: storage.NewMemory()}
	s := New(backend)
	if err := s.Append(sample("70")); err != nil {
		t.Fatal(err)
	}

	backend.failSet = true
	if err := s.Append(sample("71")); err == nil {
		t.Fatal("expected save failure")
	}
	if err := s.DeleteAt(0); err == nil {
		t.Fatal("expected save failure")
	}
	if got := weights(s); !equal(got, []string{"70"}) {
		t.Errorf("expected in-memory log to match storage, got %v", got)
	}
}

func TestSaveWritesUnderKey(t *testing.T) {
	backend := storage.NewMemory()
	s := New(backend, WithKey("health"))

	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	v, ok, _ := backend.Get("health")
	if !ok || string(v) != "[]" {
		t.Errorf("expected empty array under custom key, got %q (ok=%v)", v, ok)
	}
	if _, ok, _ := backend.Get(DefaultKey); ok {
		t.Error("expected default key to be untouched")
	}
}

func TestClear(t *testing.T) {
	backend := storage.NewMemory()
	s := New(backend)
	s.Append(sample("70"))

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}
	if _, ok, _ := backend.Get(DefaultKey); ok {
		t.Error("expected key removed from storage")
	}
}
