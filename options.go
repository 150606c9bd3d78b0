package argshape

import (
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/argshape/argshape/internal/validation"
)

type parserOption struct {
	fn func(b *build)
}

func (o parserOption) apply(b *build) {
	o.fn(b)
	b.optApplied = true
}

// WithName sets the command name used in help and error messages. The
// default is the process name.
func WithName(name string) Spec {
	return parserOption{fn: func(b *build) {
		b.opts.Name = name
	}}
}

// WithOutput redirects usage and error output, which otherwise goes to
// the standard streams.
func WithOutput(w io.Writer) Spec {
	return parserOption{fn: func(b *build) {
		b.opts.Output = w
	}}
}

// WithValidation enables checking of `validate:"..."` tags against the
// reconstructed values, with a default validator.
func WithValidation() Spec {
	return parserOption{fn: func(b *build) {
		b.opts.Validate = validation.New()
	}}
}

// WithValidator is WithValidation with a caller-configured validator,
// for custom validation functions and aliases.
func WithValidator(v *validator.Validate) Spec {
	return parserOption{fn: func(b *build) {
		b.opts.Validate = v
	}}
}
