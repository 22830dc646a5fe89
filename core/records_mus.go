package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted entity set. The entities are few and
// field-stable, so the serializers are composed by hand from mus-go
// primitives instead of generated. Timestamps travel as Unix microseconds.
var (
	IDMUS      = idMUS{}
	ListingMUS = listingMUS{}
	BidMUS     = bidMUS{}
	CategoryMUS = categoryMUS{}
	SellerMUS  = sellerMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (id ID, n int, err error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

// time helpers

func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(v).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

// optional value helpers: a bool presence flag followed by the value

func marshalTimePtr(t *time.Time, bs []byte) (n int) {
	n = ord.Bool.Marshal(t != nil, bs)
	if t != nil {
		n += marshalTime(*t, bs[n:])
	}
	return
}

func unmarshalTimePtr(bs []byte) (t *time.Time, n int, err error) {
	present, n, err := ord.Bool.Unmarshal(bs)
	if err != nil || !present {
		return nil, n, err
	}
	v, n1, err := unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return nil, n, err
	}
	return &v, n, nil
}

func sizeTimePtr(t *time.Time) int {
	if t == nil {
		return ord.Bool.Size(false)
	}
	return ord.Bool.Size(true) + sizeTime(*t)
}

func marshalStringPtr(s *string, bs []byte) (n int) {
	n = ord.Bool.Marshal(s != nil, bs)
	if s != nil {
		n += ord.String.Marshal(*s, bs[n:])
	}
	return
}

func unmarshalStringPtr(bs []byte) (s *string, n int, err error) {
	present, n, err := ord.Bool.Unmarshal(bs)
	if err != nil || !present {
		return nil, n, err
	}
	v, n1, err := ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return nil, n, err
	}
	return &v, n, nil
}

func sizeStringPtr(s *string) int {
	if s == nil {
		return ord.Bool.Size(false)
	}
	return ord.Bool.Size(true) + ord.String.Size(*s)
}

func marshalFloatPtr(f *float64, bs []byte) (n int) {
	n = ord.Bool.Marshal(f != nil, bs)
	if f != nil {
		n += varint.Float64.Marshal(*f, bs[n:])
	}
	return
}

func unmarshalFloatPtr(bs []byte) (f *float64, n int, err error) {
	present, n, err := ord.Bool.Unmarshal(bs)
	if err != nil || !present {
		return nil, n, err
	}
	v, n1, err := varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return nil, n, err
	}
	return &v, n, nil
}

func sizeFloatPtr(f *float64) int {
	if f == nil {
		return ord.Bool.Size(false)
	}
	return ord.Bool.Size(true) + varint.Float64.Size(*f)
}

func marshalIntPtr(i *int, bs []byte) (n int) {
	n = ord.Bool.Marshal(i != nil, bs)
	if i != nil {
		n += varint.Int.Marshal(*i, bs[n:])
	}
	return
}

func unmarshalIntPtr(bs []byte) (i *int, n int, err error) {
	present, n, err := ord.Bool.Unmarshal(bs)
	if err != nil || !present {
		return nil, n, err
	}
	v, n1, err := varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return nil, n, err
	}
	return &v, n, nil
}

func sizeIntPtr(i *int) int {
	if i == nil {
		return ord.Bool.Size(false)
	}
	return ord.Bool.Size(true) + varint.Int.Size(*i)
}

func marshalStrings(ss []string, bs []byte) (n int) {
	n = varint.Int.Marshal(len(ss), bs)
	for _, s := range ss {
		n += ord.String.Marshal(s, bs[n:])
	}
	return
}

func unmarshalStrings(bs []byte) (ss []string, n int, err error) {
	count, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	for i := 0; i < count; i++ {
		var (
			s  string
			n1 int
		)
		s, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
		ss = append(ss, s)
	}
	return ss, n, nil
}

func sizeStrings(ss []string) (size int) {
	size = varint.Int.Size(len(ss))
	for _, s := range ss {
		size += ord.String.Size(s)
	}
	return
}

func marshalIDs(ids []ID, bs []byte) (n int) {
	n = varint.Int.Marshal(len(ids), bs)
	for _, id := range ids {
		n += IDMUS.Marshal(id, bs[n:])
	}
	return
}

func unmarshalIDs(bs []byte) (ids []ID, n int, err error) {
	count, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	for i := 0; i < count; i++ {
		var (
			id ID
			n1 int
		)
		id, n1, err = IDMUS.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
		ids = append(ids, id)
	}
	return ids, n, nil
}

func sizeIDs(ids []ID) (size int) {
	size = varint.Int.Size(len(ids))
	for _, id := range ids {
		size += IDMUS.Size(id)
	}
	return
}

func marshalPurchase(p *Purchase, bs []byte) (n int) {
	n = ord.Bool.Marshal(p != nil, bs)
	if p != nil {
		n += ord.String.Marshal(string(p.Status), bs[n:])
		n += marshalTime(p.CreatedAt, bs[n:])
	}
	return
}

func unmarshalPurchase(bs []byte) (p *Purchase, n int, err error) {
	present, n, err := ord.Bool.Unmarshal(bs)
	if err != nil || !present {
		return nil, n, err
	}
	status, n1, err := ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return nil, n, err
	}
	createdAt, n2, err := unmarshalTime(bs[n:])
	n += n2
	if err != nil {
		return nil, n, err
	}
	return &Purchase{Status: PurchaseStatus(status), CreatedAt: createdAt}, n, nil
}

func sizePurchase(p *Purchase) int {
	if p == nil {
		return ord.Bool.Size(false)
	}
	return ord.Bool.Size(true) + ord.String.Size(string(p.Status)) + sizeTime(p.CreatedAt)
}

type listingMUS struct{}

func (listingMUS) Marshal(l Listing, bs []byte) (n int) {
	n = IDMUS.Marshal(l.Id, bs)
	n += ord.String.Marshal(l.Title, bs[n:])
	n += ord.String.Marshal(l.Description, bs[n:])
	n += ord.String.Marshal(l.Brand, bs[n:])
	n += ord.String.Marshal(l.Model, bs[n:])
	n += varint.Float64.Marshal(l.Price, bs[n:])
	n += marshalFloatPtr(l.BuyNowPrice, bs[n:])
	n += ord.String.Marshal(l.Condition, bs[n:])
	n += ord.String.Marshal(l.Reference, bs[n:])
	n += ord.String.Marshal(l.Material, bs[n:])
	n += ord.String.Marshal(l.Movement, bs[n:])
	n += marshalIntPtr(l.Year, bs[n:])
	n += ord.Bool.Marshal(l.Warranty, bs[n:])
	n += ord.String.Marshal(l.WarrantyText, bs[n:])
	n += marshalStrings(l.Images, bs[n:])
	n += marshalStrings(l.Boosters, bs[n:])
	n += ord.Bool.Marshal(l.IsAuction, bs[n:])
	n += marshalTimePtr(l.AuctionStart, bs[n:])
	n += marshalTimePtr(l.AuctionEnd, bs[n:])
	n += marshalStringPtr(l.ModerationStatus, bs[n:])
	n += marshalPurchase(l.Purchase, bs[n:])
	n += ord.String.Marshal(l.Shipping, bs[n:])
	n += IDMUS.Marshal(l.SellerId, bs[n:])
	n += marshalIDs(l.CategoryIds, bs[n:])
	n += ord.String.Marshal(l.Document, bs[n:])
	n += marshalTime(l.CreatedAt, bs[n:])
	n += marshalTime(l.UpdatedAt, bs[n:])
	return
}

func (listingMUS) Unmarshal(bs []byte) (l Listing, n int, err error) {
	var n1 int
	if l.Id, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.Description, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.Brand, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.Model, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.Price, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.BuyNowPrice, n1, err = unmarshalFloatPtr(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.Condition, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.Reference, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.Material, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.Movement, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.Year, n1, err = unmarshalIntPtr(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.Warranty, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.WarrantyText, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.Images, n1, err = unmarshalStrings(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.Boosters, n1, err = unmarshalStrings(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.IsAuction, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.AuctionStart, n1, err = unmarshalTimePtr(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.AuctionEnd, n1, err = unmarshalTimePtr(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.ModerationStatus, n1, err = unmarshalStringPtr(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.Purchase, n1, err = unmarshalPurchase(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.Shipping, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.SellerId, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.CategoryIds, n1, err = unmarshalIDs(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.Document, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.CreatedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	if l.UpdatedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return l, n + n1, err
	}
	n += n1
	return l, n, nil
}

func (listingMUS) Size(l Listing) (size int) {
	size = IDMUS.Size(l.Id)
	size += ord.String.Size(l.Title)
	size += ord.String.Size(l.Description)
	size += ord.String.Size(l.Brand)
	size += ord.String.Size(l.Model)
	size += varint.Float64.Size(l.Price)
	size += sizeFloatPtr(l.BuyNowPrice)
	size += ord.String.Size(l.Condition)
	size += ord.String.Size(l.Reference)
	size += ord.String.Size(l.Material)
	size += ord.String.Size(l.Movement)
	size += sizeIntPtr(l.Year)
	size += ord.Bool.Size(l.Warranty)
	size += ord.String.Size(l.WarrantyText)
	size += sizeStrings(l.Images)
	size += sizeStrings(l.Boosters)
	size += ord.Bool.Size(l.IsAuction)
	size += sizeTimePtr(l.AuctionStart)
	size += sizeTimePtr(l.AuctionEnd)
	size += sizeStringPtr(l.ModerationStatus)
	size += sizePurchase(l.Purchase)
	size += ord.String.Size(l.Shipping)
	size += IDMUS.Size(l.SellerId)
	size += sizeIDs(l.CategoryIds)
	size += ord.String.Size(l.Document)
	size += sizeTime(l.CreatedAt)
	size += sizeTime(l.UpdatedAt)
	return
}

type bidMUS struct{}

func (bidMUS) Marshal(b Bid, bs []byte) (n int) {
	n = IDMUS.Marshal(b.Id, bs)
	n += IDMUS.Marshal(b.ListingId, bs[n:])
	n += varint.Float64.Marshal(b.Amount, bs[n:])
	n += marshalTime(b.CreatedAt, bs[n:])
	return
}

func (bidMUS) Unmarshal(bs []byte) (b Bid, n int, err error) {
	var n1 int
	if b.Id, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return b, n + n1, err
	}
	n += n1
	if b.ListingId, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return b, n + n1, err
	}
	n += n1
	if b.Amount, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return b, n + n1, err
	}
	n += n1
	if b.CreatedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return b, n + n1, err
	}
	n += n1
	return b, n, nil
}

func (bidMUS) Size(b Bid) int {
	return IDMUS.Size(b.Id) + IDMUS.Size(b.ListingId) +
		varint.Float64.Size(b.Amount) + sizeTime(b.CreatedAt)
}

type categoryMUS struct{}

func (categoryMUS) Marshal(c Category, bs []byte) (n int) {
	n = IDMUS.Marshal(c.Id, bs)
	n += ord.String.Marshal(c.Name, bs[n:])
	n += ord.String.Marshal(c.Slug, bs[n:])
	return
}

func (categoryMUS) Unmarshal(bs []byte) (c Category, n int, err error) {
	var n1 int
	if c.Id, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Name, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Slug, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	return c, n, nil
}

func (categoryMUS) Size(c Category) int {
	return IDMUS.Size(c.Id) + ord.String.Size(c.Name) + ord.String.Size(c.Slug)
}

type sellerMUS struct{}

func (sellerMUS) Marshal(s Seller, bs []byte) (n int) {
	n = IDMUS.Marshal(s.Id, bs)
	n += ord.String.Marshal(s.City, bs[n:])
	n += ord.String.Marshal(s.PostalCode, bs[n:])
	n += ord.Bool.Marshal(s.Verified, bs[n:])
	return
}

func (sellerMUS) Unmarshal(bs []byte) (s Seller, n int, err error) {
	var n1 int
	if s.Id, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.City, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.PostalCode, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.Verified, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	return s, n, nil
}

func (sellerMUS) Size(s Seller) int {
	return IDMUS.Size(s.Id) + ord.String.Size(s.City) +
		ord.String.Size(s.PostalCode) + ord.Bool.Size(s.Verified)
}
