package billcheck

// Tables holds the reference data the analyzer matches against. Injected
// at construction so tests can run with synthetic tables.
type Tables struct {
	// BundlingRules maps a parent CPT code to the component codes its
	// payment already includes. Billing a component alongside its parent
	// is unbundling.
	BundlingRules map[string][]string

	// PreventiveCodes lists services that ACA-compliant plans must cover
	// with no patient cost share.
	PreventiveCodes map[string]struct{}
}

// DefaultTables returns the compiled-in reference data.
func DefaultTables() Tables {
	preventive := map[string]struct{}{}
	for _, code := range []string{
		"99381", "99382", "99383", "99384", "99385", "99386", "99387",
		"99391", "99392", "99393", "99394", "99395", "99396", "99397",
		"G0438", "G0439", "G0402",
		"77067", "G0101", "G0123", "G0124",
		"82270", "G0104", "G0105", "G0121",
		"36415",
	} {
		preventive[code] = struct{}{}
	}
	return Tables{
		BundlingRules: map[string][]string{
			"99213": {"99211", "99212"},
			"99214": {"99211", "99212", "99213"},
			"99215": {"99211", "99212", "99213", "99214"},
			"43239": {"43235"},
			"29881": {"29880"},
			"47562": {"47563"},
			"27447": {"27446"},
			"96372": {"96374"},
			"80053": {"80048"},
			"85025": {"85027"},
		},
		PreventiveCodes: preventive,
	}
}
