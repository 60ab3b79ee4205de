package api

import (
	"context"
	"encoding/json"
	"fmt"

	"mediassist/internal/clinic"
)

func kindOf[R clinic.Record]() clinic.Kind {
	var zero R
	return zero.Kind()
}

// List fetches every record of R's kind in backend order.
func List[R clinic.Record](ctx context.Context, c Caller) ([]R, error) {
	kind := kindOf[R]()
	res, err := c.Call(ctx, kind, clinic.OpList, nil)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, &RejectedError{Message: res.Message}
	}
	records := []R{}
	if len(res.Data) == 0 || string(res.Data) == "null" {
		return records, nil
	}
	if err := json.Unmarshal(res.Data, &records); err != nil {
		return nil, &TransportError{Kind: kind, Op: clinic.OpList, Err: fmt.Errorf("decoding %s list: %w", kind, err)}
	}
	return records, nil
}

// OperationFor is create for a record without an identifier and update otherwise.
func OperationFor(rec clinic.Record) clinic.Operation {
	if rec.Identifier() == nil {
		return clinic.OpCreate
	}
	return clinic.OpUpdate
}

// Save creates or updates rec and reports which operation it performed.
func Save[R clinic.Record](ctx context.Context, c Caller, rec R) (clinic.Operation, error) {
	op := OperationFor(rec)
	res, err := c.Call(ctx, rec.Kind(), op, rec)
	if err != nil {
		return op, err
	}
	if !res.Success {
		return op, &RejectedError{Message: res.Message}
	}
	return op, nil
}

// Delete removes the record of kind with the given identifier. Only the
// identifier field is sent.
func Delete(ctx context.Context, c Caller, kind clinic.Kind, id int64) error {
	res, err := c.Call(ctx, kind, clinic.OpDelete, map[string]int64{kind.IDField(): id})
	if err != nil {
		return err
	}
	if !res.Success {
		return &RejectedError{Message: res.Message}
	}
	return nil
}
