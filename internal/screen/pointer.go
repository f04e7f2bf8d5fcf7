package screen

import "github.com/go-vgo/robotgo"

// Pointer injects clicks at absolute screen coordinates.
type Pointer struct{}

// NewPointer returns the system pointer injector.
func NewPointer() *Pointer {
	return &Pointer{}
}

// Click moves the cursor to (x, y) and performs a left click.
func (p *Pointer) Click(x, y int) error {
	robotgo.Move(x, y)
	robotgo.Click("left", false)
	return nil
}
