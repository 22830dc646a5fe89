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


package main

import (
	"context"
	"fmt"
	"time"

	"github.com/occasio/listindex/core"
	"github.com/urfave/cli/v2"
)

var seedCategories = []*core.Category{
	{Name: "Sport", Slug: "sport"},
	{Name: "Velos", Slug: "velos"},
	{Name: "Uhren & Schmuck", Slug: "uhren-schmuck"},
	{Name: "Möbel", Slug: "moebel"},
	{Name: "Elektronik", Slug: "elektronik"},
}

var seedSellers = []*core.Seller{
	{City: "Zürich", PostalCode: "8004", Verified: true},
	{City: "Bern", PostalCode: "3011"},
	{City: "Luzern", PostalCode: "6003", Verified: true},
}

type seedListing struct {
	listing    *core.Listing
	categories []string
	seller     int
	bids       []float64
}

func seedListings() []seedListing {
	inTwoDays := time.Now().UTC().Add(48 * time.Hour)
	year := 2019

	return []seedListing{
		{
			listing: &core.Listing{
				Title:       "Rennvelo Carbon 56cm",
				Description: "Sehr gepflegtes Rennvelo, wenig gefahren.",
				Brand:       "BMC",
				Model:       "Teammachine SLR01",
				Price:       2400,
				Condition:   "used",
				Material:    "Carbon",
				Shipping:    `{"pickup":true}`,
			},
			categories: []string{"velos", "sport"},
			seller:     0,
		},
		{
			listing: &core.Listing{
				Title:       "Mountainbike 29 Zoll",
				Description: "Vollgefedert, frisch ab Service.",
				Brand:       "Scott",
				Price:       1650,
				Condition:   "used",
				Boosters:    []string{"gold"},
				Shipping:    `{"pickup":true,"post":true}`,
			},
			categories: []string{"velos", "sport"},
			seller:     1,
		},
		{
			listing: &core.Listing{
				Title:       "Fussballschuhe Gr. 42",
				Description: "Nur zweimal getragen.",
				Brand:       "Nike",
				Price:       45,
				Condition:   "like-new",
				Shipping:    `{"post":true}`,
			},
			categories: []string{"sport"},
			seller:     1,
		},
		{
			listing: &core.Listing{
				Title:        "Armbanduhr Automatik",
				Description:  "Revidierte Automatikuhr mit Stahlband.",
				Brand:        "Tissot",
				Model:        "PRX",
				Price:        390,
				Condition:    "refurbished",
				Movement:     "Automatik",
				Year:         &year,
				Warranty:     true,
				WarrantyText: "12 Monate Garantie",
				IsAuction:    true,
				AuctionEnd:   &inTwoDays,
				Boosters:     []string{"premium"},
			},
			categories: []string{"uhren-schmuck"},
			seller:     2,
			bids:       []float64{400, 425},
		},
		{
			listing: &core.Listing{
				Title:       "Sofa 3-plätzig Stoff grau",
				Description: "Abholung in der Innenstadt.",
				Price:       250,
				Condition:   "used",
				Shipping:    `{"pickup":true}`,
			},
			categories: []string{"moebel"},
			seller:     0,
		},
		{
			listing: &core.Listing{
				Title:       "Notebook 14 Zoll",
				Description: "Leichtes Arbeitsgerät mit neuem Akku.",
				Brand:       "Lenovo",
				Model:       "ThinkPad T14",
				Price:       620,
				Condition:   "refurbished",
				Boosters:    []string{"boost"},
				Shipping:    `{"post":true,"courier":true}`,
			},
			categories: []string{"elektronik"},
			seller:     2,
		},
	}
}

func seedCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()

	// Category IDs are content-hashed from the slug, so reseeding is
	// idempotent for categories.
	if _, err := db.CategoryRepository().AddCategories(ctx, seedCategories...); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	categoryBySlug := make(map[string]core.ID, len(seedCategories))
	for _, category := range seedCategories {
		categoryBySlug[category.Slug] = category.Id
	}

	sellers, err := db.SellerRepository().AddSellers(ctx, seedSellers...)
	if err != nil {
		return fmt.Errorf("failed to seed sellers: %w", err)
	}

	count := 0
	for _, seed := range seedListings() {
		seed.listing.SellerId = sellers[seed.seller].Id
		for _, slug := range seed.categories {
			seed.listing.CategoryIds = append(seed.listing.CategoryIds, categoryBySlug[slug])
		}

		added, err := db.AddListing(ctx, seed.listing)
		if err != nil {
			return fmt.Errorf("failed to seed listing %q: %w", seed.listing.Title, err)
		}

		for _, amount := range seed.bids {
			bid := &core.Bid{ListingId: added.Id, Amount: amount}
			if _, err := db.BidRepository().AddBids(ctx, bid); err != nil {
				return fmt.Errorf("failed to seed bid: %w", err)
			}
		}
		count++
	}

	fmt.Printf("seeded %d categories, %d sellers, %d listings\n",
		len(seedCategories), len(sellers), count)
	return nil
}
