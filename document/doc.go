// Package document provides the in-memory model for OpenAPI and Swagger
// descriptions used by the splitter, merger, and analyzer.
//
// A document is a tree of values: *[Map] for mappings (insertion ordered),
// []any for sequences, and string, bool, int, int64, uint64, float64 or nil
// for scalars. [Walk] visits such a tree, [Equal] compares two of them
// ignoring mapping key order, and [Fingerprint] gives a canonical form for
// de-duplication.
//
// # Loading and Saving
//
// [Load] reads a file through a billy.Filesystem and picks the format from
// its extension:
//
//	doc, err := document.Load(memfs.New(), "openapi.yaml", logger)
//	if errors.Is(err, oaserrors.ErrLoad) {
//	    // missing file, bad syntax, unsupported extension, or non-mapping root
//	}
//
// [LoadFile] does the same on the host filesystem, resolving relative paths
// against the working directory.
//
// [Save] writes JSON with two-space indentation or block-style YAML, keeping
// keys in insertion order and text unescaped.
//
// # Components and Operations
//
// [ExtractComponents] and [MergeComponents] implement the component handling
// shared by splitting and merging. [ListOperations] and [CountOperations]
// index operations using the canonical [HTTPMethods] order.
package document
