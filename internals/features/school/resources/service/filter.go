package service

import (
	"sort"
	"strings"

	"github.com/AungS8430/schooler/internals/features/school/resources/model"
	helper "github.com/AungS8430/schooler/internals/helpers"
)

// Categories lists every category used by list, deduplicated
// case-insensitively and sorted. The first spelling seen wins.
func Categories(list []model.Resource) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range list {
		for _, c := range r.Categories {
			c = strings.TrimSpace(c)
			k := strings.ToLower(c)
			if c == "" || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i]) < strings.ToLower(out[j]) })
	return out
}

func hasCategory(r model.Resource, category string) bool {
	for _, c := range r.Categories {
		if strings.EqualFold(strings.TrimSpace(c), category) {
			return true
		}
	}
	return false
}

// Filter keeps resources in category (when set) whose title or author
// contain every term of query, ignoring case and diacritics.
func Filter(list []model.Resource, query, category string) []model.Resource {
	category = strings.TrimSpace(category)
	out := make([]model.Resource, 0, len(list))
	for _, r := range list {
		if category != "" && !hasCategory(r, category) {
			continue
		}
		if !helper.MatchesAll(query, r.Title, r.Author) {
			continue
		}
		out = append(out, r)
	}
	return out
}
