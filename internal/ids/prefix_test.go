package ids

import "testing"

func TestUniquePrefixLengths(t *testing.T) {
	ids := []string{"2u3iutfd", "2a9k1111", "abc12345"}
	lengths := UniquePrefixLengths(ids)

	if got := lengths["2u3iutfd"]; got != 2 {
		t.Fatalf("expected 2u3iutfd prefix length 2, got %d", got)
	}
	if got := lengths["2a9k1111"]; got != 2 {
		t.Fatalf("expected 2a9k1111 prefix length 2, got %d", got)
	}
	if got := lengths["abc12345"]; got != 1 {
		t.Fatalf("expected abc12345 prefix length 1, got %d", got)
	}
}

func TestUniquePrefixLengthsIsCaseInsensitive(t *testing.T) {
	ids := []string{"Abc", "aBD"}
	lengths := UniquePrefixLengths(ids)

	if got := lengths["abc"]; got != 3 {
		t.Fatalf("expected abc prefix length 3, got %d", got)
	}
	if got := lengths["abd"]; got != 3 {
		t.Fatalf("expected abd prefix length 3, got %d", got)
	}
}

func TestMatchPrefix(t *testing.T) {
	ids := []string{"2u3iutfd", "2a9k1111", "abc12345"}

	match, found, ambiguous := MatchPrefix(ids, "2u")
	if !found || ambiguous {
		t.Fatalf("expected unambiguous match, got found=%v ambiguous=%v", found, ambiguous)
	}
	if match != "2u3iutfd" {
		t.Fatalf("expected match 2u3iutfd, got %q", match)
	}

	if _, _, ambiguous := MatchPrefix(ids, "2"); !ambiguous {
		t.Fatal("expected ambiguous match for prefix 2")
	}

	if _, found, _ := MatchPrefix(ids, "zz"); found {
		t.Fatal("expected no match for prefix zz")
	}
}

func TestMatchPrefixExactMatchWins(t *testing.T) {
	ids := []string{"abc", "abc12345"}

	match, found, ambiguous := MatchPrefix(ids, "abc")
	if !found || ambiguous {
		t.Fatalf("expected exact match, got found=%v ambiguous=%v", found, ambiguous)
	}
	if match != "abc" {
		t.Fatalf("expected match abc, got %q", match)
	}
}

func TestUniquePrefixLengthsSkipsDuplicatesAndEmpty(t *testing.T) {
	ids := []string{"abc", "", "ABC"}
	lengths := UniquePrefixLengths(ids)

	if len(lengths) != 1 {
		t.Fatalf("expected 1 unique ID, got %d", len(lengths))
	}
	if got := lengths["abc"]; got != 1 {
		t.Fatalf("expected abc prefix length 1, got %d", got)
	}
}
