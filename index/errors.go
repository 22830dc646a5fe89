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


package index

import "errors"

var (
	// ErrKeywordTableRequired indicates a nil keyword table was provided.
	ErrKeywordTableRequired = errors.New("keyword table is required")

	// ErrBuilderRequired indicates a nil document builder was provided.
	ErrBuilderRequired = errors.New("document builder is required")

	// ErrListingRepositoryRequired indicates a nil listing repository was provided.
	ErrListingRepositoryRequired = errors.New("listing repository is required")

	// ErrCategoryRepositoryRequired indicates a nil category repository was provided.
	ErrCategoryRepositoryRequired = errors.New("category repository is required")

	// ErrSellerRepositoryRequired indicates a nil seller repository was provided.
	ErrSellerRepositoryRequired = errors.New("seller repository is required")
)
