// Package oasplit provides tools for breaking large OpenAPI and Swagger
// documents into smaller, self-contained pieces and putting them back
// together.
//
// # Overview
//
// The library consists of four primary packages:
//
//   - splitter: Split a document by tag, by first path segment, or into fixed size chunks
//   - merger: Merge a directory of split documents back into one document
//   - analyzer: Report on structure, component reuse, tags, security, and complexity
//   - validator: Check the top-level shape of a document
//
// Supporting packages:
//
//   - document: Order-preserving document model, load and save, component merge primitives
//   - manifest: The split_mapping.json file recording how a document was split
//   - oaserrors: Structured error types shared by all packages
//
// Documents are handled as generic trees. Object keys keep their source order
// through load, split, merge, and save, so output files diff cleanly against
// their inputs. References are never resolved; "$ref" strings are copied
// verbatim.
//
// # Quick Start
//
// Split a document into one file per path prefix:
//
//	s, err := splitter.New("openapi.yaml", splitter.WithOutputDir("split_specs"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	m, err := s.Split(splitter.MethodPath, splitter.DefaultMaxOperations)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("wrote %d files\n", len(m.Files))
//
// Merge them back:
//
//	mg, err := merger.New("split_specs",
//		merger.WithConflictPolicy(document.PolicyKeepFirst),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := mg.Merge(context.Background())
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := mg.WriteResult(result, "merged_spec.json", document.FormatJSON); err != nil {
//		log.Fatal(err)
//	}
//
// Analyze a document:
//
//	a, err := analyzer.New("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	analyzer.WriteSummary(os.Stdout, a.Full())
//
// # Split Files
//
// Each split file is a complete document: the source version field, the info
// object with " - {label}" appended to the title, the selected paths, the
// source components (all of them, unreferenced ones included), servers,
// global security, and the tags the selected operations use. The info object
// also carries two extension keys, x-split-part and x-split-timestamp, which
// the merger strips again.
//
// A split_mapping.json manifest lists the files in the order they were
// written. The merger reads files in manifest order when the manifest exists
// and falls back to the sorted spec_*.json, spec_*.yaml, and spec_*.yml files
// otherwise.
//
// # Conflicts
//
// Operations with the same path and method always resolve to the last file
// processed. Component name collisions follow the configured policy:
// keep_first, keep_last, or error.
//
// # Command Line
//
// The oasplit command in cmd/oasplit exposes split, merge, analyze, and
// validate subcommands, plus an MCP server over stdio.
package oasplit
