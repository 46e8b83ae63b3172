//go:build !screen

package output

// NewFramebuffer without the screen build tag always fails; the
// framebuffer dependency only links on targets that want it.
func NewFramebuffer() (Sink, error) {
	return nil, ErrScreenNotCompiled
}
