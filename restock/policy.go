// Package restock decides whether a product needs to be reordered.
package restock

// Outcome of a restock check.
const (
	Order = "ORDER"
	OK    = "OK"
)

// Decision is the result of comparing forecast demand with stock on hand.
type Decision struct {
	ProductID int    `json:"product_id"`
	Decision  string `json:"decision"`
	Amount    int    `json:"amount"`
}

// Decide orders the shortage between demand and stock. Equal demand and stock
// does not trigger an order.
func Decide(productID, demand, stock int) Decision {
	shortage := demand - stock
	if shortage > 0 {
		return Decision{ProductID: productID, Decision: Order, Amount: shortage}
	}
	return Decision{ProductID: productID, Decision: OK, Amount: 0}
}

// Stock status values reported alongside a snapshot.
const (
	StockKnown   = "known"
	StockUnknown = "unknown"
)

// StockSnapshot is the on-hand quantity of a product. Known is false when the
// stock source could not be reached.
type StockSnapshot struct {
	ProductID int
	Quantity  int
	Known     bool
}

// UnknownStock is the snapshot used when the stock source is unavailable.
func UnknownStock(productID int) StockSnapshot {
	return StockSnapshot{ProductID: productID}
}

// Status reports StockKnown or StockUnknown.
func (s StockSnapshot) Status() string {
	if s.Known {
		return StockKnown
	}
	return StockUnknown
}

// ResolveStock is the quantity fed to Decide. Unknown stock counts as zero,
// so an outage of the stock source turns every positive forecast into an order.
func ResolveStock(s StockSnapshot) int {
	if !s.Known || s.Quantity < 0 {
		return 0
	}
	return s.Quantity
}
