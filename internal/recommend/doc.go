// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

// Package recommend implements the product recommendation engine.
//
// The engine blends three candidate pools over a fixed catalog snapshot:
//
//   - similar: content-based similarity against an anchor product
//     (category, tags, color family, fabric, work, price proximity)
//   - personalized: preference profile derived from the user's weighted
//     interaction history (views, cart adds, purchases, wishlists, reviews)
//   - trending: catalog-wide recency, price band and "trending" tag signals
//
// All read operations are total: unknown users or products, empty catalogs
// and empty histories degrade to empty or smaller result sets rather than
// errors. A recommendation widget's failure mode is "show nothing", never
// "break the page".
//
// The engine holds no external dependencies beyond an InteractionStore;
// the catalog snapshot is read-only after construction and callers rebuild
// the engine to pick up catalog changes.
package recommend
