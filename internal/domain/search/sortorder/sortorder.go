package sortorder

// Order is how a ranked result page is re-ordered before it is returned.
type Order string

// Sort orders offered by the browse page.
const (
	// Relevance keeps the engine's ranking (input order when no query was given).
	Relevance Order = "relevance"
	Newest    Order = "newest"
	PriceLow  Order = "price_low"
	PriceHigh Order = "price_high"
	// Distance orders by great-circle distance from a caller-supplied origin.
	Distance Order = "distance"
)

var aliases = map[string]Order{
	"price-low":  PriceLow,
	"price-high": PriceHigh,
	"nearest":    Distance,
}

// Parse maps a raw value (including the browse page's dashed names) to an Order.
// Empty input yields Relevance.
func Parse(s string) (Order, bool) {
	if s == "" {
		return Relevance, true
	}
	if o, ok := aliases[s]; ok {
		return o, true
	}
	o := Order(s)
	return o, o.IsValid()
}

// IsValid checks if the order is one of the supported values.
func (o Order) IsValid() bool {
	return o == Relevance || o == Newest || o == PriceLow || o == PriceHigh || o == Distance
}
