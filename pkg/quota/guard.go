package quota

import (
	"context"

	"github.com/google/uuid"
)

// Result wraps the outcome of a guarded create-operation.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`

	// Check is the quota decision that gated the operation. Populated
	// whenever the check itself completed, allowed or not.
	Check CheckResult `json:"check"`
}

// Execute is the authoritative gate for creating a quota-governed resource:
// it runs the quota check and invokes op only when the check allows it.
// Direct inserts that bypass this wrapper violate the quota contract.
//
// Denials and op's own failures come back inside the Result; the error
// return fires only when the check itself could not complete (storage or
// network failure), so a caller can distinguish "denied" from "unknown".
//
// The check and the write are not atomic: between them another request for
// the same tenant may consume the last slot. Callers needing a hard
// reservation should use a conditional insert at the storage layer instead.
func Execute[T any](ctx context.Context, svc *Service, tenantID uuid.UUID, res Resource, op func(context.Context) (T, error)) (Result[T], error) {
	if op == nil {
		return Result[T]{}, ErrOperationNotProvided
	}

	check, err := svc.CheckLimit(ctx, tenantID, res)
	if err != nil {
		return Result[T]{}, err
	}

	if !check.Allowed {
		return Result[T]{Success: false, Error: check.Message, Check: check}, nil
	}

	data, err := op(ctx)
	if err != nil {
		return Result[T]{Success: false, Error: err.Error(), Check: check}, nil
	}

	return Result[T]{Success: true, Data: data, Check: check}, nil
}
