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


package search

import "errors"

var (
	// ErrListingRepositoryRequired is returned when a listing repository is not provided.
	ErrListingRepositoryRequired = errors.New("listing repository required")

	// ErrCategoryRepositoryRequired is returned when a category repository is not provided.
	ErrCategoryRepositoryRequired = errors.New("category repository required")

	// ErrSellerRepositoryRequired is returned when a seller repository is not provided.
	ErrSellerRepositoryRequired = errors.New("seller repository required")

	// ErrBidRepositoryRequired is returned when a bid repository is not provided.
	ErrBidRepositoryRequired = errors.New("bid repository required")

	// ErrExpanderRequired is returned when a query expander is not provided.
	ErrExpanderRequired = errors.New("query expander required")
)
