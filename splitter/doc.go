// Package splitter partitions an OpenAPI or Swagger document into smaller,
// standalone documents.
//
// Three strategies are available:
//
//   - MethodTags: one document per tag. An operation with several tags is
//     written to each tag's document; untagged operations go to "untagged".
//   - MethodPath: one document per first path segment ("/users/{id}" goes to
//     "users"), cut into "{prefix}_part{K}" documents past a size limit.
//   - MethodSize: consecutive chunks of a fixed number of operations.
//
// Every split document is valid on its own: it carries the source's version,
// info, servers, security, the tags it uses, and the source's components.
// A split_mapping.json manifest describing the output is written alongside.
//
// Example:
//
//	s, err := splitter.New("api.yaml",
//	    splitter.WithOutputDir("split_specs"),
//	    splitter.WithLogger(logger),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, err := s.Split(splitter.MethodPath, 30)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(m.Names())
//
// The merger package reassembles the output.
package splitter
