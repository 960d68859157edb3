package validators

import "context"

// Validator checks a value for structural validity before it is allowed to
// reach a destructive operation.
type Validator interface {
	Validate(ctx context.Context, obj any) error
}
