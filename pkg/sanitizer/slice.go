package sanitizer

import "strings"

// NormalizeStringSlice normalizes every item and drops empties and
// duplicates, keeping first-seen order. Duplicates are detected
// case-insensitively.
func NormalizeStringSlice(items []string, normalizer func(string) string) []string {
	if len(items) == 0 {
		return []string{}
	}

	seen := make(map[string]struct{}, len(items))
	result := make([]string, 0, len(items))

	for _, item := range items {
		normalized := normalizer(item)
		if normalized == "" {
			continue
		}
		key := strings.ToLower(normalized)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, normalized)
	}

	return result
}

func NormalizeFacilities(facilities []string) []string {
	return NormalizeStringSlice(facilities, TrimAndNormalize)
}
