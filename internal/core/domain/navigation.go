package domain

import "fmt"

// Feature identifiers gate individual admin screens. They match the rows of
// the features table and the ids the SPA ships in its route definitions.
const (
	FeatureDashboard        = 1
	FeatureUserManagement   = 2
	FeatureStaff            = 3
	FeatureCustomerGroup    = 4
	FeatureAppointments     = 5
	FeatureFinancialGroup   = 6
	FeatureMasterDataGroup  = 7
	FeatureCustomers        = 15
	FeatureCaseHistory      = 16
	FeatureInvoices         = 17
	FeatureExpenses         = 18
	FeatureMedicines        = 19
	FeatureTreatments       = 20
	FeatureMedicalCondition = 21
	FeatureReminders        = 22
)

// FeaturePermissions maps a feature id to whether the viewer may access it.
// A nil map means "not loaded yet" and is distinct from an empty map.
type FeaturePermissions map[int]bool

// Allows reports whether the feature is explicitly granted.
func (p FeaturePermissions) Allows(featureID int) bool {
	if p == nil {
		return false
	}
	return p[featureID]
}

// NavigationNode is one entry of the admin menu tree. The tree is exactly two
// levels deep: a top-level item with an optional ordered list of sub-items.
// Parent and children are gated independently by their own feature id.
type NavigationNode struct {
	Path        string
	DisplayName string
	FeatureID   int
	Children    []NavigationNode
}

// DefaultNavigationTree returns the full admin menu in declaration order,
// before any permission filtering.
func DefaultNavigationTree() []NavigationNode {
	return []NavigationNode{
		{Path: "/dashboard", DisplayName: "Dashboard", FeatureID: FeatureDashboard},
		{Path: "/user", DisplayName: "User Management", FeatureID: FeatureUserManagement},
		{Path: "/staff", DisplayName: "Manage Staff", FeatureID: FeatureStaff},
		{
			Path:        "/customer",
			DisplayName: "Manage Customer",
			FeatureID:   FeatureCustomerGroup,
			Children: []NavigationNode{
				{Path: "/customers", DisplayName: "Customers", FeatureID: FeatureCustomers},
				{Path: "/case-history", DisplayName: "Case History", FeatureID: FeatureCaseHistory},
			},
		},
		{Path: "/appointment-scheduling", DisplayName: "Book Appointment", FeatureID: FeatureAppointments},
		{
			Path:        "/financial",
			DisplayName: "Financial",
			FeatureID:   FeatureFinancialGroup,
			Children: []NavigationNode{
				{Path: "/invoices", DisplayName: "Invoices", FeatureID: FeatureInvoices},
				{Path: "/expenses-tracker", DisplayName: "Expenses Tracker", FeatureID: FeatureExpenses},
			},
		},
		{
			Path:        "/master-data",
			DisplayName: "Master Data",
			FeatureID:   FeatureMasterDataGroup,
			Children: []NavigationNode{
				{Path: "/medicines", DisplayName: "Medicines", FeatureID: FeatureMedicines},
				{Path: "/treatments", DisplayName: "Treatments", FeatureID: FeatureTreatments},
				{Path: "/medical-condition", DisplayName: "Medical Condition", FeatureID: FeatureMedicalCondition},
			},
		},
		{Path: "/reminders", DisplayName: "Reminders", FeatureID: FeatureReminders},
	}
}

// MenuEntry is one renderable menu item derived from a filtered tree. Group
// entries carry sub-links and no link of their own; leaves carry a link only.
type MenuEntry struct {
	Key      string
	Label    string
	Link     string
	Children []MenuEntry
}

// ToMenuEntries converts a filtered navigation tree into renderable menu
// entries, one per node. A parent with children becomes a group entry keyed by
// its path, or a synthetic key when the path is empty; its children become
// links under layout+childPath. A leaf becomes a single link to layout+path.
// Purely structural: no permission logic happens here.
func ToMenuEntries(layout string, tree []NavigationNode) []MenuEntry {
	entries := make([]MenuEntry, 0, len(tree))
	for i, node := range tree {
		if len(node.Children) > 0 {
			key := node.Path
			if key == "" {
				key = fmt.Sprintf("group-%d", i)
			}
			group := MenuEntry{
				Key:      key,
				Label:    node.DisplayName,
				Children: make([]MenuEntry, 0, len(node.Children)),
			}
			for _, child := range node.Children {
				group.Children = append(group.Children, MenuEntry{
					Key:   layout + child.Path,
					Label: child.DisplayName,
					Link:  layout + child.Path,
				})
			}
			entries = append(entries, group)
			continue
		}

		entries = append(entries, MenuEntry{
			Key:   layout + node.Path,
			Label: node.DisplayName,
			Link:  layout + node.Path,
		})
	}
	return entries
}
