package model

// Organization is the top of the containment hierarchy: an Organization has
// Divisions, a Division has Projects, a Project has Transactions.
type Organization struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Code        string `json:"code"`
}

// Division groups projects within an organization. List endpoints disagree on
// the name field, so both are decoded.
type Division struct {
	ID           string `json:"id"`
	OrgID        string `json:"orgId"`
	DivisionName string `json:"divisionName"`
	Name         string `json:"name"`
	Description  string `json:"description"`
}

// DisplayName resolves the division name with the usual fallback chain.
func (d *Division) DisplayName() string {
	if d.DivisionName != "" {
		return d.DivisionName
	}
	if d.Name != "" {
		return d.Name
	}
	return NamePlaceholder
}

// Project groups transactions within a division.
type Project struct {
	ID              string `json:"id"`
	DivisionID      string `json:"divisionId"`
	ProjectName     string `json:"projectName"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	BudgetAllocated Amount `json:"budgetAllocated"`
}

// DisplayName resolves the project name with the usual fallback chain.
func (p *Project) DisplayName() string {
	if p.ProjectName != "" {
		return p.ProjectName
	}
	if p.Name != "" {
		return p.Name
	}
	return NamePlaceholder
}
