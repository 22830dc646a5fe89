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


package badger

import "github.com/occasio/listindex/storage"

// MemoryRepositories bundles the in-memory repositories used in tests.
type MemoryRepositories struct {
	Listings   storage.ListingRepository
	Categories storage.CategoryRepository
	Sellers    storage.SellerRepository
	Bids       storage.BidRepository
	Backend    *Backend
}

// Close closes all repositories and the backend.
func (m *MemoryRepositories) Close() {
	m.Bids.Close()
	m.Sellers.Close()
	m.Categories.Close()
	m.Listings.Close()
	m.Backend.Close()
}

// NewMemoryRepositories creates in-memory repositories for testing.
// Caller must Close the bundle when done.
func NewMemoryRepositories() (*MemoryRepositories, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}

	listings, err := NewListingRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	categories, err := NewCategoryRepository(backend)
	if err != nil {
		listings.Close()
		backend.Close()
		return nil, err
	}

	sellers, err := NewSellerRepository(backend)
	if err != nil {
		categories.Close()
		listings.Close()
		backend.Close()
		return nil, err
	}

	bids, err := NewBidRepository(backend)
	if err != nil {
		sellers.Close()
		categories.Close()
		listings.Close()
		backend.Close()
		return nil, err
	}

	return &MemoryRepositories{
		Listings:   listings,
		Categories: categories,
		Sellers:    sellers,
		Bids:       bids,
		Backend:    backend,
	}, nil
}
