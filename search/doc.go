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


// Package search ranks and retrieves visible marketplace listings.
//
// The Searcher type implements the read path: it expands the raw query,
// applies visibility and structured filters as hard predicates, and keeps
// candidates that match at least one of three soft conditions:
//   - the posting index matches an expanded token (lexical)
//   - trigram similarity against the fuzzy probe clears a fixed threshold
//   - the normalized query is a substring of title, brand, or model
//
// Candidates are scored by a composable Scorer and ordered with top-tier
// promoted listings strictly partitioned before everything else. Without a
// query the Searcher degrades to a pure filter scan with recency ordering.
package search
