package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// slugify lowercases a product name and collapses whitespace runs into
// single hyphens. An empty or whitespace-only name slugifies to ""; products
// then get "", "-1", "-2" and so on as collisions accumulate. No business
// validation happens here, so that edge is accepted rather than rejected.
func slugify(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// SlugChecker probes the store for an existing slug.
type SlugChecker interface {
	SlugExists(slug string) (bool, error)
}

// UniqueSlug returns the first candidate derived from name that no product
// already carries: slugify(name) first, then slugify(name)-1, slugify(name)-2
// and so on. Every attempt starts from the normalized name. A store failure
// aborts the probe and surfaces as a creation failure to the caller.
//
// The probe and the subsequent insert are not atomic; two concurrent requests
// for the same name can both see a free candidate. The unique index on slug
// rejects the loser, which surfaces as a constraint error rather than a
// retry here.
func UniqueSlug(store SlugChecker, name string) (string, error) {
	base := slugify(name)
	candidate := base
	for count := 1; ; count++ {
		exists, err := store.SlugExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, count)
	}
}
