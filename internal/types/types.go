// Package types contains interfaces shared by the URL value types.
package types

import "io"

// Renderer is an interface that is used to render a type to a string or a writer.
type Renderer interface {
	// Render renders the type to a string with the given options.
	Render(opts *RenderOptions) string
	// RenderTo renders the type to a writer with the given options.
	RenderTo(w io.Writer, opts *RenderOptions) (int, error)
}

// RenderOptions is a struct that is used to pass options to rendering methods.
// Nil options render the canonical serialization.
type RenderOptions struct {
	// ExcludeFragment omits the fragment of a URL and the leading '#'.
	ExcludeFragment bool `json:"exclude_fragment,omitempty" yaml:"exclude_fragment,omitempty"`
	// UnicodeHost renders domain hosts in their Unicode form.
	UnicodeHost bool `json:"unicode_host,omitempty" yaml:"unicode_host,omitempty"`
}

func (o *RenderOptions) WithoutFragment() bool { return o != nil && o.ExcludeFragment }

func (o *RenderOptions) WithUnicodeHost() bool { return o != nil && o.UnicodeHost }

type Equalable interface {
	Equal(val any) bool
}

type Cloneable[T any] interface {
	Clone() T
}
