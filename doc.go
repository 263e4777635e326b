// Package tiermatch ranks in-memory collections against short free-text
// queries using tiered fuzzy matching.
//
// Every candidate is classified into one tier, from an exact match of the
// whole text down to a partial token overlap. Results are ordered by tier
// and then by an entity-specific key, and ties keep their input order.
//
// # Built-in entities
//
//	engine, _ := tiermatch.New(tiermatch.WithLimit(20))
//	orgs := engine.SearchOrganizations(organizations, "pt maju")
//	for _, r := range orgs {
//	    fmt.Println(r.MatchType(), r.Item().Name)
//	}
//
// Worker searches also match active dependents. A matching dependent is
// returned as a projected result of its worker, ranked below every direct hit.
//
// # Custom collections
//
//	type Product struct{ SKU, Title string }
//
//	res := tiermatch.Search(engine, products, "widget",
//	    func(p Product) (string, error) { return p.SKU + " " + p.Title, nil },
//	    func(a, b Product) int { return strings.Compare(a.Title, b.Title) },
//	)
package tiermatch
