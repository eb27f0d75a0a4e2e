package model

// AnomalyReport is the AI assessment attached one-to-one to a transaction.
// It is read-only from the client's perspective.
type AnomalyReport struct {
	ID              string  `json:"id"`
	TransactionID   string  `json:"transactionId"`
	ConfidenceScore float64 `json:"confidenceScore"`
	Reason          string  `json:"reason"`
	ReviewStatus    string  `json:"reviewStatus"`
	AuditorNotes    string  `json:"auditorNotes"`
}
