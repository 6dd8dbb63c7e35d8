package domain

// CartLine is one selected item in a user's cart. Prices are whole rupees.
// Selecting the same item twice yields two lines.
type CartLine struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// CartTotal sums line prices.
func CartTotal(lines []CartLine) int64 {
	var total int64
	for _, line := range lines {
		total += line.Price
	}
	return total
}
