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


package storage

import (
	"github.com/occasio/listindex/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalListing serializes a Listing to bytes.
func MarshalListing(listing *core.Listing) []byte {
	buf := make([]byte, core.ListingMUS.Size(*listing))
	core.ListingMUS.Marshal(*listing, buf)
	return buf
}

// UnmarshalListing deserializes a Listing from bytes.
func UnmarshalListing(data []byte) (*core.Listing, error) {
	listing, _, err := core.ListingMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// MarshalBid serializes a Bid to bytes.
func MarshalBid(bid *core.Bid) []byte {
	buf := make([]byte, core.BidMUS.Size(*bid))
	core.BidMUS.Marshal(*bid, buf)
	return buf
}

// UnmarshalBid deserializes a Bid from bytes.
func UnmarshalBid(data []byte) (*core.Bid, error) {
	bid, _, err := core.BidMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

// MarshalCategory serializes a Category to bytes.
func MarshalCategory(category *core.Category) []byte {
	buf := make([]byte, core.CategoryMUS.Size(*category))
	core.CategoryMUS.Marshal(*category, buf)
	return buf
}

// UnmarshalCategory deserializes a Category from bytes.
func UnmarshalCategory(data []byte) (*core.Category, error) {
	category, _, err := core.CategoryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// MarshalSeller serializes a Seller to bytes.
func MarshalSeller(seller *core.Seller) []byte {
	buf := make([]byte, core.SellerMUS.Size(*seller))
	core.SellerMUS.Marshal(*seller, buf)
	return buf
}

// UnmarshalSeller deserializes a Seller from bytes.
func UnmarshalSeller(data []byte) (*core.Seller, error) {
	seller, _, err := core.SellerMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &seller, nil
}
