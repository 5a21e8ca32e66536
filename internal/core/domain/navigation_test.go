package domain

import "testing"

func TestToMenuEntriesLeaf(t *testing.T) {
	entries := ToMenuEntries("/admin", []NavigationNode{
		{Path: "/dashboard", DisplayName: "Dashboard", FeatureID: FeatureDashboard},
	})

	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	entry := entries[0]
	if entry.Link != "/admin/dashboard" {
		t.Errorf("Link = %q, want /admin/dashboard", entry.Link)
	}
	if entry.Key != "/admin/dashboard" {
		t.Errorf("Key = %q, want /admin/dashboard", entry.Key)
	}
	if entry.Label != "Dashboard" {
		t.Errorf("Label = %q, want Dashboard", entry.Label)
	}
	if entry.Children != nil {
		t.Errorf("leaf entry has children: %+v", entry.Children)
	}
}

func TestToMenuEntriesGroup(t *testing.T) {
	entries := ToMenuEntries("/admin", []NavigationNode{
		{
			Path:        "/financial",
			DisplayName: "Financial",
			FeatureID:   FeatureFinancialGroup,
			Children: []NavigationNode{
				{Path: "/invoices", DisplayName: "Invoices", FeatureID: FeatureInvoices},
				{Path: "/expenses-tracker", DisplayName: "Expenses Tracker", FeatureID: FeatureExpenses},
			},
		},
	})

	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	group := entries[0]
	if group.Key != "/financial" {
		t.Errorf("group Key = %q, want /financial", group.Key)
	}
	if group.Link != "" {
		t.Errorf("group Link = %q, want empty", group.Link)
	}
	if len(group.Children) != 2 {
		t.Fatalf("group children = %d, want 2", len(group.Children))
	}
	if group.Children[0].Link != "/admin/invoices" {
		t.Errorf("first child Link = %q, want /admin/invoices", group.Children[0].Link)
	}
	if group.Children[1].Link != "/admin/expenses-tracker" {
		t.Errorf("second child Link = %q, want /admin/expenses-tracker", group.Children[1].Link)
	}
}

func TestToMenuEntriesSyntheticGroupKey(t *testing.T) {
	entries := ToMenuEntries("", []NavigationNode{
		{
			DisplayName: "Unnamed",
			Children: []NavigationNode{
				{Path: "/a", DisplayName: "A"},
			},
		},
	})

	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Key == "" {
		t.Error("group with empty path must get a synthetic key")
	}
}

func TestToMenuEntriesPreservesOrder(t *testing.T) {
	entries := ToMenuEntries("", menuFixture())

	wantLabels := []string{"Dashboard", "Financial", "Reminders"}
	if len(entries) != len(wantLabels) {
		t.Fatalf("entries = %d, want %d", len(entries), len(wantLabels))
	}
	for i, want := range wantLabels {
		if entries[i].Label != want {
			t.Errorf("entries[%d].Label = %q, want %q", i, entries[i].Label, want)
		}
	}
}

func menuFixture() []NavigationNode {
	return []NavigationNode{
		{Path: "/dashboard", DisplayName: "Dashboard", FeatureID: FeatureDashboard},
		{
			Path:        "/financial",
			DisplayName: "Financial",
			FeatureID:   FeatureFinancialGroup,
			Children: []NavigationNode{
				{Path: "/invoices", DisplayName: "Invoices", FeatureID: FeatureInvoices},
			},
		},
		{Path: "/reminders", DisplayName: "Reminders", FeatureID: FeatureReminders},
	}
}
