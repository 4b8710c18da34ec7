// Package validate holds the process-wide request validator.
package validate

import "github.com/go-playground/validator/v10"

var v = validator.New()

// Struct runs tag validation on a request payload.
func Struct(s any) error { return v.Struct(s) }
