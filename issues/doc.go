// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package issues classifies bills into issue categories by keyword.

# Classification

	c := issues.Default()
	c.Classify("Climate Action Now Act", "") // Environment

Rules are checked in priority order and the first category with a matching
keyword wins:

	Healthcare → Economy → Environment → Defense → Immigration → Education

Text that matches nothing, including empty text, is Other.

Matching is case-insensitive on word starts: "health" matches "Healthcare"
but "epa" does not match "separate". Multi-word keywords such as
"national security" match across punctuation.

# Custom Taxonomies

A YAML file replaces the default vocabulary. File order is priority order:

	categories:
	  - category: Civil Rights
	    keywords: [voting rights, civil rights]
	  - category: Environment
	    keywords: [climate, energy]

	c, err := issues.Load(cfg.TaxonomyFile)
*/
package issues
