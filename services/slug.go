package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/GuilhermeFusuma/portifolio/errs"
)

// SlugExistsFunc checks whether a slug is already taken within one entity
// namespace (projects, achievements, tags and categories each have their own).
type SlugExistsFunc func(slug string) (bool, error)

// DeriveSlug turns a human title into a unique URL-safe slug: lowercase,
// anything outside letters/digits/whitespace/hyphen stripped, runs of
// whitespace and hyphens collapsed to a single hyphen, leading and trailing
// hyphens trimmed. When the base slug is taken, -1, -2, ... suffixes are
// tried until a free one is found.
//
// A title that strips down to nothing is rejected rather than producing
// degenerate "-1"-style slugs.
func DeriveSlug(title string, exists SlugExistsFunc) (string, error) {
	base := slugify(title)
	if base == "" {
		return "", errs.NewInvalidFieldError("title", "yields an empty slug")
	}

	slug := base
	for counter := 1; ; counter++ {
		taken, err := exists(slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

// slugify produces the deterministic base slug for a title. Re-running it
// on the same input always yields the same result.
func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-':
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
		// everything else is stripped
	}
	return strings.TrimRight(b.String(), "-")
}
