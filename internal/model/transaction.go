// Package model contains the client-side representations of AuChan entities.
// Entities are remote-owned; the client holds transient copies and never
// computes identifiers.
package model

import (
	"strings"
	"time"
)

// NamePlaceholder is displayed when a related entity name cannot be resolved.
const NamePlaceholder = "—"

// Transaction types as transmitted by the backend.
const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"
)

// Transaction represents a single financial transaction as returned by the
// backend. Relation fields are pointers because the list endpoints are
// inconsistent about which relations they embed.
type Transaction struct {
	ID              string         `json:"id"`
	UserID          string         `json:"userId"`
	OrgID           string         `json:"orgId"`
	ProjectID       string         `json:"projectId"`
	CategoryID      string         `json:"categoryId"`
	Amount          Amount         `json:"amount"`
	Type            string         `json:"type"`
	Status          string         `json:"status"`
	Description     string         `json:"description"`
	TransactionDate string         `json:"transactionDate"`
	CreatedAt       string         `json:"createdAt"`
	AIAnomalyScore  *float64       `json:"aiAnomalyScore"`
	BlockchainHash  string         `json:"blockchainHash"`
	BlockchainTxID  string         `json:"blockchainTxId"`
	User            *UserRef       `json:"user"`
	Category        *CategoryRef   `json:"category"`
	Project         *ProjectRef    `json:"project"`
	Attachments     []Attachment   `json:"attachments"`
	AnomalyReport   *AnomalyReport `json:"anomalyReport"`
}

// UserRef is the embedded creator of a transaction.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CategoryRef is the embedded category relation. Some endpoints use
// categoryName, others plain name.
type CategoryRef struct {
	CategoryName string `json:"categoryName"`
	Name         string `json:"name"`
}

// ProjectRef is the embedded project relation, optionally carrying its
// division.
type ProjectRef struct {
	ProjectName     string       `json:"projectName"`
	Name            string       `json:"name"`
	BudgetAllocated Amount       `json:"budgetAllocated"`
	Division        *DivisionRef `json:"division"`
}

// DivisionRef is the embedded division relation.
type DivisionRef struct {
	DivisionName string `json:"divisionName"`
	Name         string `json:"name"`
}

// Attachment is a stored file reference on a transaction.
type Attachment struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl"`
}

// CategoryName resolves the category display name, preferring categoryName
// over name, falling back to the placeholder.
func (t *Transaction) CategoryName() string {
	if t.Category != nil {
		if t.Category.CategoryName != "" {
			return t.Category.CategoryName
		}
		if t.Category.Name != "" {
			return t.Category.Name
		}
	}
	return NamePlaceholder
}

// ProjectName resolves the project display name.
func (t *Transaction) ProjectName() string {
	if t.Project != nil {
		if t.Project.ProjectName != "" {
			return t.Project.ProjectName
		}
		if t.Project.Name != "" {
			return t.Project.Name
		}
	}
	return NamePlaceholder
}

// DivisionName resolves the division display name through the project
// relation.
func (t *Transaction) DivisionName() string {
	if t.Project != nil && t.Project.Division != nil {
		if t.Project.Division.DivisionName != "" {
			return t.Project.Division.DivisionName
		}
		if t.Project.Division.Name != "" {
			return t.Project.Division.Name
		}
	}
	return NamePlaceholder
}

// NormalizedType returns the transaction type in upper case for comparison
// against TypeIncome/TypeExpense.
func (t *Transaction) NormalizedType() string {
	return strings.ToUpper(t.Type)
}

// IsIncome reports whether the transaction is an income entry.
func (t *Transaction) IsIncome() bool {
	return t.NormalizedType() == TypeIncome
}

// Date parses the transaction date. The zero time is returned when the
// backend sent an empty or malformed value.
func (t *Transaction) Date() time.Time {
	if t.TransactionDate == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, t.TransactionDate); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Verified reports whether the transaction carries a chain hash.
func (t *Transaction) Verified() bool {
	return t.BlockchainHash != ""
}

// MatchesSearch applies the history view's client-side filter: a transaction
// matches when the query occurs in its description, project, or division name.
func (t *Transaction) MatchesSearch(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Description), q) ||
		strings.Contains(strings.ToLower(t.ProjectName()), q) ||
		strings.Contains(strings.ToLower(t.DivisionName()), q)
}
