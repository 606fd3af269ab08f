package similarity

import (
	"math"
	"testing"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("The Tomato, and BASIL pasta!")
	want := []string{"tomato", "basil", "pasta"}
	if len(tokens) != len(want) {
		t.Fatalf("expected %v, got %v", want, tokens)
	}
	for i, tok := range want {
		if tokens[i] != tok {
			t.Errorf("token %d: expected %q, got %q", i, tok, tokens[i])
		}
	}
}

func TestTokenizeKoreanBigrams(t *testing.T) {
	// "양파를" must not survive as a single particle-carrying token.
	tokens := Tokenize("양파를 볶는다")
	want := []string{"양파", "파를", "볶는", "는다"}
	if len(tokens) != len(want) {
		t.Fatalf("expected %v, got %v", want, tokens)
	}
	for i, tok := range want {
		if tokens[i] != tok {
			t.Errorf("token %d: expected %q, got %q", i, tok, tokens[i])
		}
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if tokens := Tokenize("  ,,  the a of "); len(tokens) != 0 {
		t.Errorf("expected no tokens, got %v", tokens)
	}
}

func TestBuildIdenticalTexts(t *testing.T) {
	b := &Builder{}
	edges := b.Build([]Document{
		{ItemID: 1, Text: "tomato basil pasta"},
		{ItemID: 2, Text: "tomato basil pasta"},
	})
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(edges))
	}
	if edges[0].ItemA != 1 || edges[0].ItemB != 2 {
		t.Errorf("expected edge (1,2), got (%d,%d)", edges[0].ItemA, edges[0].ItemB)
	}
	if math.Abs(edges[0].Score-1.0) > 1e-9 {
		t.Errorf("identical texts should score 1.0, got %f", edges[0].Score)
	}
}

func TestBuildDisjointTexts(t *testing.T) {
	b := &Builder{}
	edges := b.Build([]Document{
		{ItemID: 1, Text: "tomato basil"},
		{ItemID: 2, Text: "chicken rice"},
	})
	if len(edges) != 0 {
		t.Errorf("disjoint texts should produce no edges, got %d", len(edges))
	}
}

func TestBuildZeroVectorHasNoEdges(t *testing.T) {
	b := &Builder{}
	edges := b.Build([]Document{
		{ItemID: 1, Text: "tomato basil pasta"},
		{ItemID: 2, Text: "tomato basil"},
		{ItemID: 3, Text: "the and of"}, // all stopwords -> zero vector
	})
	for _, e := range edges {
		if e.ItemA == 3 || e.ItemB == 3 {
			t.Errorf("zero-vector item must not appear in edges, got %+v", e)
		}
	}
	if len(edges) != 1 {
		t.Errorf("expected 1 edge between items 1 and 2, got %d", len(edges))
	}
}

func TestBuildThreshold(t *testing.T) {
	docs := []Document{
		{ItemID: 1, Text: "tomato basil pasta olive"},
		{ItemID: 2, Text: "tomato basil pasta olive"},
		{ItemID: 3, Text: "tomato cream soup butter"},
	}

	all := (&Builder{}).Build(docs)
	strict := (&Builder{Threshold: 0.9}).Build(docs)

	if len(all) != 3 {
		t.Fatalf("expected 3 edges without threshold, got %d", len(all))
	}
	if len(strict) != 1 {
		t.Fatalf("expected 1 edge above 0.9, got %d", len(strict))
	}
	if strict[0].ItemA != 1 || strict[0].ItemB != 2 {
		t.Errorf("expected the identical pair to survive, got (%d,%d)", strict[0].ItemA, strict[0].ItemB)
	}
}

func TestBuildDeterministicOrder(t *testing.T) {
	// Same corpus, different input order -> same edges in the same order.
	docs := []Document{
		{ItemID: 3, Text: "tomato basil"},
		{ItemID: 1, Text: "tomato basil pasta"},
		{ItemID: 2, Text: "tomato pasta"},
	}
	a := (&Builder{}).Build(docs)
	b := (&Builder{}).Build([]Document{docs[1], docs[2], docs[0]})

	if len(a) != len(b) {
		t.Fatalf("edge counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("edge %d differs: %+v vs %+v", i, a[i], b[i])
		}
		if a[i].ItemA >= a[i].ItemB {
			t.Errorf("edge %d not normalized: (%d,%d)", i, a[i].ItemA, a[i].ItemB)
		}
	}
}
