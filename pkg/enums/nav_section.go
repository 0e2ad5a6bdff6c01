package enums

// NavSection names a top-level area of the dashboard application.
type NavSection string

const (
	NavDashboard  NavSection = "Dashboard"
	NavPromotions NavSection = "Promotions"
	NavOptimizer  NavSection = "Optimizer"
	NavFinancials NavSection = "Financials"
	NavDeductions NavSection = "Deductions"
	NavAIInsights NavSection = "AI Insights"
	NavAnalytics  NavSection = "Analytics"
	NavUsers      NavSection = "Users"
	NavSettings   NavSection = "Settings"
)

func allSections() []NavSection {
	return []NavSection{
		NavDashboard,
		NavPromotions,
		NavOptimizer,
		NavFinancials,
		NavDeductions,
		NavAIInsights,
		NavAnalytics,
		NavUsers,
		NavSettings,
	}
}

// SectionsFor is the single capability table mapping a role to the sections it
// may see. The switch is exhaustive over UserRole so adding a role forces a
// decision here.
func SectionsFor(role UserRole) []NavSection {
	switch role {
	case UserRoleSuperAdmin, UserRoleTenantAdmin:
		return allSections()
	case UserRoleExecutive, UserRoleRevenueManager:
		sections := make([]NavSection, 0, 7)
		for _, s := range allSections() {
			if s == NavUsers || s == NavSettings {
				continue
			}
			sections = append(sections, s)
		}
		return sections
	case UserRoleAccountManager:
		return []NavSection{NavDashboard, NavPromotions, NavAnalytics}
	case UserRoleFinance:
		return []NavSection{NavDashboard, NavFinancials, NavDeductions, NavAnalytics}
	case UserRoleAnalyst:
		return []NavSection{NavDashboard, NavAnalytics, NavAIInsights}
	default:
		return []NavSection{NavDashboard}
	}
}

// CanAccessSection reports whether the role's capability table includes the section.
func CanAccessSection(role UserRole, section NavSection) bool {
	for _, s := range SectionsFor(role) {
		if s == section {
			return true
		}
	}
	return false
}
