package cli

import "github.com/petanihandal/auchan-cli/internal/model"

// NavEntry is a navigation item gated by an allow-list of role strings.
// An entry renders iff the current role is a member of its allow-list, so an
// unset or unknown role sees no gated entries.
type NavEntry struct {
	Label   string
	Command string
	Roles   []string
}

// AllowedFor reports whether the entry is visible to the given role.
func (e NavEntry) AllowedFor(role string) bool {
	normalized := model.NormalizeRole(role)
	if normalized == "" {
		return false
	}
	for _, allowed := range e.Roles {
		if normalized == allowed {
			return true
		}
	}
	return false
}

// Menu mirrors the product's sidebar: each feature with the roles that may
// see it.
var Menu = []NavEntry{
	{
		Label:   "Dashboard",
		Command: "auchan dashboard",
		Roles:   []string{model.RoleAdmin, model.RoleTreasurer, model.RoleAuditor, model.RoleMember},
	},
	{
		Label:   "Input Transaksi",
		Command: "auchan transactions create",
		Roles:   []string{model.RoleAdmin, model.RoleTreasurer},
	},
	{
		Label:   "Riwayat Transaksi",
		Command: "auchan transactions history",
		Roles:   []string{model.RoleAdmin, model.RoleTreasurer, model.RoleAuditor, model.RoleMember},
	},
	{
		Label:   "Blockchain Ledger",
		Command: "auchan ledger",
		Roles:   []string{model.RoleAdmin, model.RoleTreasurer, model.RoleAuditor, model.RoleMember},
	},
	{
		Label:   "Laporan AI",
		Command: "auchan report",
		Roles:   []string{model.RoleAdmin, model.RoleAuditor},
	},
	{
		Label:   "Create Divisi",
		Command: "auchan divisions create",
		Roles:   []string{model.RoleAdmin},
	},
	{
		Label:   "Anggota",
		Command: "auchan members",
		Roles:   []string{model.RoleAdmin},
	},
}

// VisibleMenu filters the menu down to the entries the role may see.
func VisibleMenu(role string) []NavEntry {
	var visible []NavEntry
	for _, entry := range Menu {
		if entry.AllowedFor(role) {
			visible = append(visible, entry)
		}
	}
	return visible
}
