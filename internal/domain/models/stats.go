package models

// ServiceBreakdown counts records per service type.
type ServiceBreakdown struct {
	Sump int `json:"sump"`
	Tank int `json:"tank"`
	Both int `json:"both"`
}

// Total returns the number of records across all service types.
func (b ServiceBreakdown) Total() int {
	return b.Sump + b.Tank + b.Both
}

// MonthlyStats is the rollup of all records sharing a YYYY-MM month key.
// It is always derived from the live record set and never stored.
type MonthlyStats struct {
	Month            string           `json:"month"`
	TotalIncome      float64          `json:"totalIncome"`
	CustomersServed  int              `json:"customersServed"`
	ServiceBreakdown ServiceBreakdown `json:"serviceBreakdown"`
}
