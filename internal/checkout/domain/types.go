package domain

type Money struct {
	Currency string
	Amount   int64
}

// QuoteLine prices one cart line. UnitPrice is the add-time price the cart
// captured; CurrentPrice is what the catalog asks today, so the view can
// flag drift. LineTotal is UnitPrice times Quantity, exact.
type QuoteLine struct {
	ProductID    string
	Title        string
	Quantity     int64
	UnitPrice    Money
	CurrentPrice Money
	Listed       bool
	LineTotal    Money
}

type Quote struct {
	Lines      []QuoteLine
	TotalItems int64
	Total      Money
}
