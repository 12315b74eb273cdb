package models

// DashboardSummary is the admin analytics overview.
type DashboardSummary struct {
	TotalProperties    int            `json:"totalProperties"`
	FeaturedProperties int            `json:"featuredProperties"`
	ByCategory         map[string]int `json:"byCategory"`
	AveragePrice       float64        `json:"averagePrice"`
	TotalLeads         int            `json:"totalLeads"`
	LeadsByStatus      map[string]int `json:"leadsByStatus"`
	NewLeadsLast7Days  int            `json:"newLeadsLast7Days"`
	RecentLeads        []Lead         `json:"recentLeads"`
}
