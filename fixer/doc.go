// Package fixer normalizes schema trees before they are hashed.
//
// Schemas authored independently often describe the same shape in slightly
// different ways: enum values in a different order, a float where every
// value is integral, label maps spelled out as an object with a placeholder
// key. The fixer rewrites these variants into one canonical form so that
// equivalent nodes hash identically.
//
// # Quick Start
//
// Normalize a parsed registry using functional options:
//
//	result, err := fixer.FixWithOptions(
//		fixer.WithParsed(*parseResult),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Applied %d fixes\n", result.FixCount)
//
// Or use a reusable Fixer instance:
//
//	f := fixer.New()
//	f.Policy.FloatAllowList = append(f.Policy.FloatAllowList, "ratio")
//	result, _ := f.Fix(reg)
//
// # Supported Fixes
//
// Every rule looks at the node kind and the last segment of the node's
// location (the property name it is stored under):
//
//   - Deprecation markers: a boolean named "deprecated" becomes nullable.
//   - Empty array items: an items schema without any keyword becomes an
//     object with an explicit empty property set.
//   - Enum order: string enums are sorted.
//   - Number narrowing: a number becomes an integer unless its name is in
//     the float allow-list.
//   - Wide counters: integers on the wide-counter list get format int64.
//   - Label maps: an object named "labels" with no properties (or the legacy
//     "labelkey" placeholder) becomes a string map with a key pattern.
//
// The rules run in that order on every node, children before parents, so a
// number narrowed to an integer is also eligible for the wide-counter rule.
//
// # Related Packages
//
//   - [github.com/MaximilianKoestler/hcloud-openapi/parser] - Load schema documents
//   - [github.com/MaximilianKoestler/hcloud-openapi/deduplicator] - Runs the fixer as its first pass
package fixer
