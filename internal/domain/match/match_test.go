package match

import "testing"

func TestRanks(t *testing.T) {
	want := map[Type]int{
		ExactFullMatch: 1,
		ExactWordMatch: 2,
		StartsWith:     3,
		Contains:       4,
		MultiWordMatch: 5,
		FuzzyMatch:     6,
		PartialMatch:   7,
		NoMatch:        999,
	}
	for typ, rank := range want {
		if typ.Rank() != rank {
			t.Errorf("%s.Rank() = %d, want %d", typ, typ.Rank(), rank)
		}
	}
}

func TestTypes_Ordered(t *testing.T) {
	types := Types()
	for i := 1; i < len(types); i++ {
		if types[i-1].Rank() >= types[i].Rank() {
			t.Errorf("%s listed before %s but is not stronger", types[i-1], types[i])
		}
	}
}

func TestTextRoundTrip(t *testing.T) {
	for _, typ := range Types() {
		b, err := typ.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", int(typ), err)
		}
		var got Type
		if err := got.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", b, err)
		}
		if got != typ {
			t.Errorf("round trip %s -> %s", typ, got)
		}
	}
}

func TestInvalid(t *testing.T) {
	if Type(42).IsValid() {
		t.Error("Type(42) should be invalid")
	}
	if Type(42).String() != "Type(42)" {
		t.Errorf("String() = %q", Type(42).String())
	}
	if _, err := Type(0).MarshalText(); err == nil {
		t.Error("expected error marshaling zero type")
	}
	var typ Type
	if err := typ.UnmarshalText([]byte("Exact")); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestHitAndMiss(t *testing.T) {
	h := Hit(Contains, "pt maju")
	if !h.Matched || h.Rank != 4 || h.Type != Contains || h.MatchedText != "pt maju" {
		t.Errorf("Hit = %+v", h)
	}
	m := Miss()
	if m.Matched || m.Rank != 999 || m.Type != NoMatch || m.MatchedText != "" {
		t.Errorf("Miss = %+v", m)
	}
}
