package dto

// MonthlySummaryRequest selects the month to report. Month is 0-based.
type MonthlySummaryRequest struct {
	Month *int `json:"month"`
	Year  *int `json:"year"`
}

// MonthlySummaryResponse confirms the queued report.
type MonthlySummaryResponse struct {
	Message     string `json:"message"`
	Recipient   string `json:"recipient"`
	PeriodLabel string `json:"periodLabel"`
}
