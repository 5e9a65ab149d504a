// Package validator provides a small validation abstraction for settings and
// domain structs.
//
// Callers depend on the Validator interface; the go-playground/validator v10
// implementation lives in this package.
package validator
