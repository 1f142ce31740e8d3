// Package analyzer reports on the structure and quality of an OpenAPI or
// Swagger document.
//
// Sections cover basic metadata, paths and operations, component reuse, tag
// coverage, security coverage, a composite complexity score, and the shallow
// structural validation from the validator package. Full combines them and
// adds a list of recommendations.
//
//	a, err := analyzer.New("api.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := analyzer.WriteSummary(os.Stdout, a.Full()); err != nil {
//	    log.Fatal(err)
//	}
//
// The component reusability score is the fraction of declared components
// whose "#/components/{type}/{name}" string appears as a $ref somewhere in the
// document. References are never resolved.
package analyzer
