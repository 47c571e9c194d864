package sales

// DefaultSlot is the storage key holding the serialized collection.
const DefaultSlot = "vendas"

// Sale represents a single sale record.
type Sale struct {
	ID    string  `json:"id" yaml:"id"`
	Name  string  `json:"nome" yaml:"nome"`
	Value float64 `json:"valor" yaml:"valor"`
}

// Summary aggregates the collection for the list view.
type Summary struct {
	Quantity    int     `json:"quantity" yaml:"quantity"`
	TotalAmount float64 `json:"total_amount" yaml:"total_amount"`
}

// SeedSales returns a fresh copy of the sample records used when nothing has
// been persisted yet.
func SeedSales() []Sale {
	return []Sale{
		{ID: "1", Name: "Produto A", Value: 100.00},
		{ID: "2", Name: "Produto B", Value: 200.00},
		{ID: "3", Name: "Serviço X", Value: 300.00},
		{ID: "4", Name: "Consultoria Y", Value: 450.00},
	}
}

// Summarize counts sales and adds up their values.
func Summarize(sales []Sale) Summary {
	s := Summary{Quantity: len(sales)}
	for _, sale := range sales {
		s.TotalAmount += sale.Value
	}
	return s
}
