// Package validator performs a shallow structural check of an OpenAPI or
// Swagger document.
//
// It reports, as human-readable strings, a missing version field, a missing
// or malformed info object (and missing info.title or info.version), a
// missing, malformed, or empty paths object, and a components value that is
// not a mapping. It does not validate against the OpenAPI schema.
//
//	result := validator.Check(doc)
//	if !result.IsValid {
//	    for _, issue := range result.Issues {
//	        fmt.Println(issue)
//	    }
//	}
package validator
