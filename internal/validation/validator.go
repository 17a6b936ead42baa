// Package validation checks structural invariants on a DocumentIR before it
// reaches the optimizer and generators. Violations are returned as data, not
// errors: partial-document feedback must reach the editor UI, so nothing
// here panics or short-circuits.
package validation

import (
	"fmt"
	"sort"

	"github.com/pagewright/pagewright/internal/types"
)

// Result is the outcome of validating a DocumentIR. Errors is empty exactly
// when Valid is true.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks a DocumentIR, accumulating every violation:
//   - at least one page exists
//   - every page has a non-empty name and slug
//   - every page has strictly positive dimensions
//   - no two pages share a slug (every duplicate is reported)
//
// The returned error list is sorted for stable output.
func Validate(ir types.DocumentIR) Result {
	var errs []string

	if len(ir.Pages) == 0 {
		errs = append(errs, "document has no pages: mark at least one surface as a publish target")
	}

	for _, page := range ir.Pages {
		label := page.Name
		if label == "" {
			label = page.ID
		}
		if page.Name == "" {
			errs = append(errs, fmt.Sprintf("page %q has an empty name", page.ID))
		}
		if page.Slug == "" {
			errs = append(errs, fmt.Sprintf("page %q has an empty slug", label))
		}
		if page.Width <= 0 {
			errs = append(errs, fmt.Sprintf("page %q has non-positive width %g", label, page.Width))
		}
		if page.Height <= 0 {
			errs = append(errs, fmt.Sprintf("page %q has non-positive height %g", label, page.Height))
		}
	}

	bySlug := map[string][]string{}
	for _, page := range ir.Pages {
		if page.Slug == "" {
			continue
		}
		bySlug[page.Slug] = append(bySlug[page.Slug], page.Name)
	}
	for slug, names := range bySlug {
		if len(names) < 2 {
			continue
		}
		for _, name := range names[1:] {
			errs = append(errs, fmt.Sprintf("page %q duplicates slug %q", name, slug))
		}
	}

	sort.Strings(errs)
	return Result{Valid: len(errs) == 0, Errors: errs}
}
