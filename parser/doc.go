// Package parser loads JSON-schema-like request and response bodies into a
// [schema.Registry].
//
// Input documents may be JSON or YAML and take one of three shapes:
//
//   - an OpenAPI fragment with components.schemas, each entry a root
//   - a single schema, whose id is the file name without extension
//   - a plain mapping from component id to schema
//
// Decoding is where legacy shapes are repaired before the pipeline runs:
// an array whose items is a list collapses to its first alternative, the
// forbidden "definitions" keyword is removed, and keywords outside the
// supported model are dropped. Each repair is reported as a [Diagnostic].
//
// Files are read and decoded concurrently, then merged in argument order so
// results are deterministic.
//
// # Usage
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithGlob("schemas/**/*.json"),
//	    parser.WithLogger(logger),
//	)
//	if err != nil {
//	    return err
//	}
//	for _, d := range result.Diagnostics {
//	    fmt.Println(d)
//	}
package parser
