package domain

type Money struct {
	Currency string
	Amount   int64
}

// Product carries the fields denormalized into a line item at add time.
type Product struct {
	ID    string
	Title string
	Price Money
	Image string
}

// Item is one product's line in a bucket. Quantity is always >= 1; a line
// driven to zero is removed from the bucket, never kept at zero.
type Item struct {
	ProductID string
	Title     string
	Price     Money
	Image     string
	Quantity  int64
}

// Bucket is the ordered line items of a single user. New items append;
// the order never changes otherwise.
type Bucket []Item

// Find returns the index of the line for productID, or -1.
func (b Bucket) Find(productID string) int {
	for i, it := range b {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// Clone deep-copies the bucket so callers can hold it as a snapshot.
func (b Bucket) Clone() Bucket {
	if b == nil {
		return Bucket{}
	}
	out := make(Bucket, len(b))
	copy(out, b)
	return out
}

// Totals holds the derived sums over a bucket: Items is the sum of
// quantities, Total the exact price sum in minor units.
type Totals struct {
	Items int64
	Total Money
}

// Totals computes the derived sums. Rounding for display happens at the
// presentation edge, never here.
func (b Bucket) Totals() Totals {
	var t Totals
	for _, it := range b {
		t.Items += it.Quantity
		t.Total.Amount += it.Price.Amount * it.Quantity
		if t.Total.Currency == "" {
			t.Total.Currency = it.Price.Currency
		}
	}
	return t
}
