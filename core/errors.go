// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Domain errors
var (
	// ErrInvalidListing indicates a Listing failed validation.
	ErrInvalidListing = errors.New("invalid listing")

	// ErrInvalidFilter indicates a malformed structured search filter.
	// Surfaced before any storage query is issued.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrInvalidSort indicates an unknown sort field.
	ErrInvalidSort = errors.New("invalid sort field")

	// ErrSearchUnavailable indicates a storage call failed or timed out.
	// Retryable by the caller; the core performs no automatic retries.
	ErrSearchUnavailable = errors.New("search unavailable")

	// ErrDocumentBuildFailed indicates a listing is missing a field required
	// to build its search document.
	ErrDocumentBuildFailed = errors.New("document build failed")

	// ErrEmptyTitle indicates the listing Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrNegativePrice indicates a negative listing price.
	ErrNegativePrice = errors.New("price cannot be negative")

	// ErrAuctionEndMissing indicates a timed auction without an end timestamp.
	ErrAuctionEndMissing = errors.New("auction listing needs an end timestamp")
)
