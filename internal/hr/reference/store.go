// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"time"
)

// # Reference Data Access

// Repository defines the data access contract for reference requests.
type Repository interface {

	/*
		Create persists a new reference request.

		Parameters:
		  - context: context.Context
		  - reference: *CompletedReference (ID and TokenHash already set)

		Returns:
		  - error: CONFLICT when the application already has this reference number
	*/
	Create(context context.Context, reference *CompletedReference) error

	/*
		FindByID retrieves a reference request with its answers.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *CompletedReference: Hydrated entity
		  - error: ErrReferenceNotFound if missing
	*/
	FindByID(context context.Context, id string) (*CompletedReference, error)

	/*
		ListByApplication returns every request of an application ordered by
		reference number.

		Parameters:
		  - context: context.Context
		  - applicationID: string

		Returns:
		  - []*CompletedReference
		  - error: Retrieval failures
	*/
	ListByApplication(context context.Context, applicationID string) ([]*CompletedReference, error)

	/*
		MarkSent records the dispatch time of a pending request.

		Returns:
		  - error: ErrAlreadyCompleted if the request was completed meanwhile
	*/
	MarkSent(context context.Context, id string, at time.Time) error

	/*
		Complete stores the referee's answers. Only pending requests change.

		Returns:
		  - error: ErrAlreadyCompleted if answers were already stored
	*/
	Complete(context context.Context, id string, answers *ReferenceAnswer, at time.Time) error
}
