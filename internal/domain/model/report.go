package model

// Report is the transactions report returned by the order-report endpoint.
type Report struct {
	Executed bool
	Details  string
	Orders   []ReportOrder
}

// ReportOrder is one row of the transactions report. All fields pass
// through as the gateway sent them.
type ReportOrder struct {
	ID         string
	Number     string
	StatusName string
	DateIn     string
	Amount     string
	HoldNumber string
	Email      string
}
