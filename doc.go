// Package hcloudopenapi canonicalizes the schema components of a large HTTP
// API description.
//
// Schema documents (bare JSON schemas or OpenAPI components.schemas
// documents) are parsed into a registry of roots, normalized, and then
// deduplicated: every object shape that occurs more than once is extracted
// into a single named component and each occurrence is replaced by a
// reference. Names are either pinned by a persisted naming file
// (schema_types.json) or derived fresh from the locations a shape occurs at.
//
// # Packages
//
//   - schema: the node model and the component registry
//   - parser: loading documents into a registry, repairing legacy shapes
//   - walker: post-order traversal with location tracking
//   - fixer: the normalization rewrites
//   - deduplicator: hashing, selection, naming, and extraction
//   - schematypes: the persisted naming file
//
// # Quick Start
//
//	result, err := deduplicator.DeduplicateWithOptions(
//	    deduplicator.WithFilePaths("schemas/servers.json", "schemas/networks.json"),
//	    deduplicator.WithPinnedFile("resources/schema_types.json"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Extracted %d components\n", result.ExtractedCount())
//
// Naming files are written only after a run succeeds:
//
//	if err := schematypes.Save("resources/schema_types.json", result.Components); err != nil {
//	    log.Fatal(err)
//	}
//
// The hcloud-openapi command wraps the same pipeline, and its serve
// subcommand exposes it to MCP clients over stdio.
package hcloudopenapi
