package domain

// Money is an exact amount in the currency's minor unit (cents).
type Money struct {
	Currency string
	Amount   int64
}

type Product struct {
	ID       string
	Title    string
	Price    Money
	Image    string
	Category string
	Rating   float64
}
