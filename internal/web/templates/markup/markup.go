// Package markup is a small helper for writing templ components by hand.
package markup

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Writer accumulates the first write error so components can emit
// markup without checking every call.
type Writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

// New returns a Writer for w
func New(ctx context.Context, w io.Writer) *Writer {
	return &Writer{ctx: ctx, w: w}
}

// Raw writes trusted markup as-is
func (m *Writer) Raw(s string) {
	if m.err != nil {
		return
	}
	_, m.err = io.WriteString(m.w, s)
}

// Text writes s with HTML escaping
func (m *Writer) Text(s string) {
	m.Raw(templ.EscapeString(s))
}

// Textf formats and escapes
func (m *Writer) Textf(format string, args ...any) {
	m.Text(fmt.Sprintf(format, args...))
}

// Attr writes name="value" with the value escaped, preceded by a space
func (m *Writer) Attr(name, value string) {
	m.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// Component renders a nested component
func (m *Writer) Component(c templ.Component) {
	if m.err != nil || c == nil {
		return
	}
	m.err = c.Render(m.ctx, m.w)
}

// Err returns the first error encountered
func (m *Writer) Err() error {
	return m.err
}

// Func adapts a writer callback into a templ.Component
func Func(fn func(m *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := New(ctx, w)
		fn(m)
		return m.Err()
	})
}
