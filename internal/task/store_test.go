package task

import (
	"fmt"
	"reflect"
	"testing"
)

// seqIDs returns an id generator yielding "t1", "t2", ...
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}
}

func newTestStore() *Store {
	return NewStore(WithIDFunc(seqIDs()))
}

func TestAdd_AppendsOpenTask(t *testing.T) {
	s := newTestStore()

	for i, text := range []string{"Buy milk", "  Walk dog  ", "x"} {
		before := s.Len()
		got, ok := s.Add(text)
		if !ok {
			t.Fatalf("add %q rejected", text)
		}
		if s.Len() != before+1 {
			t.Errorf("expected length %d, got %d", before+1, s.Len())
		}
		if got.Completed {
			t.Errorf("expected new task to be open, got completed")
		}
		if got.ID == "" {
			t.Error("expected non-empty id")
		}
		last := s.List()[i]
		if last != got {
			t.Errorf("expected last task %+v, got %+v", got, last)
		}
	}
}

func TestAdd_TrimsText(t *testing.T) {
	s := newTestStore()
	got, _ := s.Add("  Walk dog \n")
	if got.Text != "Walk dog" {
		t.Errorf("expected trimmed text, got %q", got.Text)
	}
}

func TestAdd_InvalidUTF8SurvivesEncoding(t *testing.T) {
	s := newTestStore()
	got, ok := s.Add("caf\xe9")
	if !ok {
		t.Fatal("expected add to succeed")
	}
	if got.Text != "caf\uFFFD" {
		t.Errorf("expected invalid byte replaced, got %q", got.Text)
	}

	blob, err := Encode(s.List())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := Decode(blob)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(s.List(), out) {
		t.Errorf("round trip changed the list: %+v -> %+v", s.List(), out)
	}
}

func TestAdd_RejectsBlank(t *testing.T) {
	s := newTestStore()
	s.Add("keep")

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, ok := s.Add(text); ok {
			t.Errorf("expected %q to be rejected", text)
		}
	}
	if s.Len() != 1 {
		t.Errorf("expected length 1, got %d", s.Len())
	}
}

func TestAdd_SkipsCollidingID(t *testing.T) {
	ids := []string{"a", "a", "b"}
	s := NewStore(WithIDFunc(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))

	first, _ := s.Add("one")
	second, _ := s.Add("two")
	if first.ID != "a" || second.ID != "b" {
		t.Errorf("expected ids a and b, got %s and %s", first.ID, second.ID)
	}
}

func TestToggle_FlipsOnlyTarget(t *testing.T) {
	s := newTestStore()
	a, _ := s.Add("A")
	b, _ := s.Add("B")
	c, _ := s.Add("C")

	if !s.Toggle(b.ID) {
		t.Fatal("expected toggle to find task")
	}

	want := []Task{a, {ID: b.ID, Text: "B", Completed: true}, c}
	if got := s.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestToggle_Involution(t *testing.T) {
	s := newTestStore()
	s.Add("A")
	b, _ := s.Add("B")
	before := s.List()

	s.Toggle(b.ID)
	s.Toggle(b.ID)

	if got := s.List(); !reflect.DeepEqual(got, before) {
		t.Errorf("expected %+v, got %+v", before, got)
	}
}

func TestToggleDelete_AbsentIDUnchanged(t *testing.T) {
	s := newTestStore()
	s.Add("A")
	s.Add("B")
	before, _ := Encode(s.List())

	if s.Toggle("missing") {
		t.Error("expected toggle of missing id to report false")
	}
	if s.Delete("missing") {
		t.Error("expected delete of missing id to report false")
	}

	after, _ := Encode(s.List())
	if before != after {
		t.Errorf("expected %s, got %s", before, after)
	}
}

func TestDelete_Twice(t *testing.T) {
	s := newTestStore()
	a, _ := s.Add("A")
	s.Add("B")

	if !s.Delete(a.ID) {
		t.Fatal("expected first delete to find task")
	}
	once := s.List()
	if s.Delete(a.ID) {
		t.Error("expected second delete to report false")
	}
	if got := s.List(); !reflect.DeepEqual(got, once) {
		t.Errorf("expected %+v, got %+v", once, got)
	}
}

func TestDelete_PreservesOrder(t *testing.T) {
	s := newTestStore()
	a, _ := s.Add("A")
	b, _ := s.Add("B")
	c, _ := s.Add("C")

	s.Delete(b.ID)

	want := []Task{a, c}
	if got := s.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestList_ReturnsCopy(t *testing.T) {
	s := newTestStore()
	a, _ := s.Add("A")

	list := s.List()
	list[0].Text = "changed"
	list[0].Completed = true

	got, _ := s.Get(a.ID)
	if got != a {
		t.Errorf("expected store to be unaffected, got %+v", got)
	}
}

func TestReplace(t *testing.T) {
	s := newTestStore()
	s.Add("old")

	in := []Task{{ID: "x", Text: "X"}, {ID: "y", Text: "Y", Completed: true}}
	s.Replace(in)
	in[0].Text = "mutated"

	want := []Task{{ID: "x", Text: "X"}, {ID: "y", Text: "Y", Completed: true}}
	if got := s.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
