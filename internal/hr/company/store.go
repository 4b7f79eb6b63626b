// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package company

import "context"

// Repository defines the persistence contract for the settings row.
type Repository interface {

	/*
		Load reads the saved settings.

		Returns:
		  - *Settings: nil when nothing has been saved yet
		  - error: Retrieval failures
	*/
	Load(context context.Context) (*Settings, error)

	// Save upserts the settings row.
	Save(context context.Context, settings *Settings) error
}
