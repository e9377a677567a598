// Package errors provides the classified error primitives used across sitewinder.
//
// Every fatal condition the generator can hit (a missing site root, an unreadable
// template, a malformed date, a missing include target) is reported as a
// ClassifiedError carrying a category, a severity and structured context such as
// the offending path. The CLI adapter turns those into a stderr message and an exit
// code.
//
// Example usage:
//
//	err := errors.IncludeError("include target not found").
//		WithContext("include", ref).
//		WithContext("template", page.TemplatePath()).
//		WithCause(readErr).
//		Build()
package errors
