// Package merger reassembles documents produced by the splitter package, or
// any directory of spec_* documents, into a single OpenAPI document.
//
// # Input discovery
//
// When the input directory holds a split_mapping.json manifest, its entries
// are merged in manifest order. Otherwise every spec_*.json, spec_*.yaml, and
// spec_*.yml file is merged in name order.
//
// # Merge rules
//
// Files are combined strictly in order, so earlier files win wherever a rule
// says "first":
//
//   - version and info come from the first file that loads; the split suffix
//     is cut from the title and the split stamps are removed
//   - later files only add an info description or x- extensions not yet set
//   - servers are de-duplicated by value and tags by name
//   - security and externalDocs keep the first value seen
//   - components follow the configured document.ConflictPolicy
//   - operations always overwrite, counting a path conflict
//
// A file that fails to load is skipped with a warning.
//
// # Example
//
//	m, err := merger.New("split_specs",
//	    merger.WithConflictPolicy(document.PolicyKeepLast),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := m.Merge(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := m.WriteResult(result, "merged.yaml", ""); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d operations merged\n", result.Stats.OperationsMerged)
package merger
