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


// Package storage provides the storage abstraction layer for listindex.
//
// This package defines repository interfaces that decouple storage
// implementation from the search and indexing logic. Any backend that can
// provide a tokenized posting index, ordinary predicate scans, and bulk
// fetch-by-id can implement them; the bundled implementation is BadgerDB.
//
// # Constructor Return Type Pattern
//
// This package follows a strict "return interface" pattern for all public
// constructors to enforce abstraction and enable multiple storage backend
// implementations:
//
//	repo, err := badger.NewListingRepository(backend)  // returns storage.ListingRepository
//
// This design decision prioritizes:
//   - Abstraction: Prevents accidental coupling to BadgerDB specifics
//   - Swappability: Easy to add alternative backends (PostgreSQL, in-memory, etc.)
//   - Testing: Consumers can use mock implementations without modification
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - ListingRepository: listings, their documents, and the posting index
//   - CategoryRepository: category records and the slug index
//   - SellerRepository: seller display records
//   - BidRepository: bids and per-listing bid indices
//
// # Visibility
//
// ListingRepository.FindVisible pushes the core.IsVisible predicate into the
// storage scan. There is exactly one implementation of that predicate, so
// storage-filtered and in-process evaluation cannot disagree.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support. Pass context.Background() for operations
// without specific timeout requirements.
package storage
