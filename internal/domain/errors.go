package domain

import (
	"errors"
	"fmt"
)

// Error kinds returned by BranchTree operations. Every failure leaves the tree unchanged.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrOutOfRange   = errors.New("out of range")
)

// TreeError describes a rejected tree operation
type TreeError struct {
	Op     string
	NodeID NodeID
	Kind   error
	Reason string
}

func (e *TreeError) Error() string {
	if e.NodeID == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.NodeID, e.Reason)
}

func (e *TreeError) Is(target error) bool {
	return target == e.Kind
}

func notFound(op string, id NodeID, reason string) error {
	return &TreeError{Op: op, NodeID: id, Kind: ErrNotFound, Reason: reason}
}

func invalidState(op string, id NodeID, reason string) error {
	return &TreeError{Op: op, NodeID: id, Kind: ErrInvalidState, Reason: reason}
}

func outOfRange(op string, id NodeID, reason string) error {
	return &TreeError{Op: op, NodeID: id, Kind: ErrOutOfRange, Reason: reason}
}
