// Package emails extracts e-mail addresses from free text.
package emails

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var addressPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// Extract returns every distinct address in text in first-seen order.
// Matching is case sensitive, so addresses differing only in case are kept apart.
func Extract(text string) []string {
	found := addressPattern.FindAllString(text, -1)
	seen := make(map[string]struct{}, len(found))
	unique := make([]string, 0, len(found))
	for _, addr := range found {
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		unique = append(unique, addr)
	}
	return unique
}

// Result is the JSON shape of an extraction.
type Result struct {
	Count  int      `json:"count"`
	Emails []string `json:"emails"`
}

// Format renders addresses as "lines" (one per line), "list" (comma
// separated on one line) or "json".
func Format(addrs []string, format string) (string, error) {
	switch format {
	case "lines", "":
		if len(addrs) == 0 {
			return "", nil
		}
		return strings.Join(addrs, "\n") + "\n", nil
	case "list":
		if len(addrs) == 0 {
			return "", nil
		}
		return strings.Join(addrs, ", ") + "\n", nil
	case "json":
		if addrs == nil {
			addrs = []string{}
		}
		data, err := json.MarshalIndent(Result{Count: len(addrs), Emails: addrs}, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: lines, list, json)", format)
	}
}
