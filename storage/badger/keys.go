package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/occasio/listindex/core"
)

// Key prefixes for different data types
const (
	listingPrefix        = "lstrec"
	listingCreatedPrefix = "lstrecc"
	listingTokenPrefix   = "lsttok"
	listingIDSeq         = "lstrecseq"
	indexStatsKey        = "lstidxstat"
	categoryPrefix       = "catrec"
	categorySlugPrefix   = "catslug"
	sellerPrefix         = "selrec"
	sellerIDSeq          = "selrecseq"
	bidPrefix            = "bidrec"
	bidListingPrefix     = "bidrecl"
	bidIDSeq             = "bidrecseq"
)

// makeListingKey generates a key for a listing by ID.
func makeListingKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", listingPrefix, id))
}

// makeListingCreatedKey generates a composite key for the created-at index.
// Format: prefix:createdAt:id
func makeListingCreatedKey(createdAt time.Time, id core.ID) []byte {
	prefix := listingCreatedPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeTokenKey generates a composite key for the posting index.
// Format: prefix:token:id — tokens are normalized and alphanumeric, so the
// colon never collides with token content.
func makeTokenKey(token string, id core.ID) []byte {
	prefix := listingTokenPrefix + ":" + token + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialTokenKey generates the scan prefix for one token's postings.
func makePartialTokenKey(token string) []byte {
	return []byte(listingTokenPrefix + ":" + token + ":")
}

// listingIDFromTokenKey extracts the listing ID from a posting key.
func listingIDFromTokenKey(key []byte) core.ID {
	if len(key) < 8 {
		return 0
	}
	return core.ID(binary.BigEndian.Uint64(key[len(key)-8:]))
}

// makeCategoryKey generates a key for a category by ID.
func makeCategoryKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", categoryPrefix, id))
}

// makeCategorySlugKey generates a key for category lookup by slug.
func makeCategorySlugKey(slug string) []byte {
	return []byte(categorySlugPrefix + ":" + slug)
}

// makeSellerKey generates a key for a seller by ID.
func makeSellerKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", sellerPrefix, id))
}

// makeBidKey generates a key for a bid by ID.
func makeBidKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", bidPrefix, id))
}

// makeBidListingKey generates a composite key for the per-listing bid index.
// Format: prefix:listingID:bidID
func makeBidListingKey(listingID, bidID core.ID) []byte {
	prefix := bidListingPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+16)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(listingID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(bidID))
	return buf
}

// makePartialBidListingKey generates the scan prefix for one listing's bids.
func makePartialBidListingKey(listingID core.ID) []byte {
	prefix := bidListingPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(listingID))
	return buf
}
