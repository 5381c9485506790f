package ids

import "strings"

// NormalizeUniqueIDs lowercases IDs and drops blanks and duplicates,
// preserving order.
func NormalizeUniqueIDs(ids []string) []string {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool)
	for _, id := range ids {
		idLower := strings.ToLower(id)
		if idLower == "" || seen[idLower] {
			continue
		}
		seen[idLower] = true
		unique = append(unique, idLower)
	}
	return unique
}

// MatchPrefixNormalized finds the ID matching a prefix among
// already-normalized IDs. An exact match wins over prefix matches.
// Returns the match, whether one was found, and whether the prefix
// was ambiguous.
func MatchPrefixNormalized(normalized []string, prefix string) (match string, found, ambiguous bool) {
	prefixLower := strings.ToLower(strings.TrimSpace(prefix))
	if prefixLower == "" {
		return "", false, false
	}

	for _, id := range normalized {
		if id == prefixLower {
			return id, true, false
		}
	}

	for _, id := range normalized {
		if !strings.HasPrefix(id, prefixLower) {
			continue
		}
		if found {
			return "", false, true
		}
		match = id
		found = true
	}
	return match, found, false
}

// MatchPrefix finds the ID matching a prefix, normalizing both sides first.
func MatchPrefix(ids []string, prefix string) (match string, found, ambiguous bool) {
	return MatchPrefixNormalized(NormalizeUniqueIDs(ids), prefix)
}

// UniquePrefixLengths returns the shortest unique prefix length for each ID.
func UniquePrefixLengths(ids []string) map[string]int {
	return UniquePrefixLengthsNormalized(NormalizeUniqueIDs(ids))
}

// UniquePrefixLengthsNormalized is UniquePrefixLengths for IDs that are
// already normalized.
func UniquePrefixLengthsNormalized(normalized []string) map[string]int {
	lengths := make(map[string]int, len(normalized))
	for _, id := range normalized {
		lengths[id] = uniquePrefixLength(id, normalized)
	}
	return lengths
}

func uniquePrefixLength(id string, ids []string) int {
	for length := 1; length <= len(id); length++ {
		prefix := id[:length]
		unique := true
		for _, other := range ids {
			if other == id {
				continue
			}
			if strings.HasPrefix(other, prefix) {
				unique = false
				break
			}
		}
		if unique {
			return length
		}
	}

	return len(id)
}
