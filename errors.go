package planflow

import "errors"

var (
	ErrSubStepNotFound    = errors.New("planflow: sub-step not found")
	ErrActionItemNotFound = errors.New("planflow: action item not found")
	ErrSelfLoop           = errors.New("planflow: a sub-step cannot connect to itself")
	ErrNotEditable        = errors.New("planflow: editor is read-only")
	ErrAttachmentTooLarge = errors.New("planflow: attachment exceeds the size limit")
	ErrUnknownProposalRef = errors.New("planflow: unknown proposal ref")
)
