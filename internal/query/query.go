// Package query builds the canonical filter query for list reloads,
// reconciling the filter form's fields with the page-level navigational
// parameters.
package query

import "net/url"

// Merge combines form field values with navigational parameters into one
// parameter set. Form values win for identical keys; navigational values
// fill in only keys the form left unset. Empty values are dropped on
// both sides, so a blank filter field never reaches the backend.
//
// Callers must not depend on encoding order, only on key/value
// membership; url.Values.Encode sorts keys, which keeps the result
// deterministic for fixed inputs.
func Merge(form, nav url.Values) url.Values {
	merged := url.Values{}
	for key, vals := range form {
		for _, v := range vals {
			if v == "" {
				continue
			}
			merged.Add(key, v)
		}
	}
	for key, vals := range nav {
		if merged.Has(key) {
			continue
		}
		for _, v := range vals {
			if v == "" {
				continue
			}
			merged.Add(key, v)
		}
	}
	return merged
}
