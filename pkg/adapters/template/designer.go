// Package template provides the stock design-spec producer: a deterministic
// local template interpolating the request text. It stands in for a real
// design-service integration behind the same port.
package template

import (
	"context"
	"fmt"
)

const designTemplate = `Design spec for: %s
- Layout: centered login form
- Components: email input, password input, submit button
- Colors: #FFFFFF background, #2563EB primary button
- Font: Inter 16px`

// Designer renders the fixed design template. Always succeeds.
type Designer struct{}

// NewDesigner creates the template designer.
func NewDesigner() *Designer {
	return &Designer{}
}

// Design implements ports.Designer.
func (d *Designer) Design(_ context.Context, request string) (string, error) {
	return fmt.Sprintf(designTemplate, request), nil
}
