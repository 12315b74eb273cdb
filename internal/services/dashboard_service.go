package services

import (
	"context"
	"fmt"
	"time"

	"github.com/estately/backend/internal/models"
)

const recentLeadsLimit = 5

// DashboardService aggregates the admin overview from the property and lead
// collaborators.
type DashboardService struct {
	properties PropertyService
	leads      LeadService
	now        func() time.Time
}

func NewDashboardService(properties PropertyService, leads LeadService) *DashboardService {
	return &DashboardService{
		properties: properties,
		leads:      leads,
		now:        time.Now,
	}
}

func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	props, err := s.properties.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard properties: %w", err)
	}
	leads, err := s.leads.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("dashboard leads: %w", err)
	}

	out := &models.DashboardSummary{
		TotalProperties: len(props),
		ByCategory:      make(map[string]int, len(models.PropertyCategories)),
		TotalLeads:      len(leads),
		LeadsByStatus:   make(map[string]int, len(models.LeadStatuses)),
		RecentLeads:     make([]models.Lead, 0, recentLeadsLimit),
	}
	for _, c := range models.PropertyCategories {
		out.ByCategory[c] = 0
	}
	for _, st := range models.LeadStatuses {
		out.LeadsByStatus[st] = 0
	}

	var total float64
	for _, p := range props {
		out.ByCategory[p.Category]++
		if p.Featured {
			out.FeaturedProperties++
		}
		total += p.Price
	}
	if len(props) > 0 {
		out.AveragePrice = total / float64(len(props))
	}

	cutoff := s.now().Add(-7 * 24 * time.Hour)
	for i, l := range leads {
		out.LeadsByStatus[l.Status]++
		if l.CreatedAt.After(cutoff) {
			out.NewLeadsLast7Days++
		}
		if i < recentLeadsLimit {
			out.RecentLeads = append(out.RecentLeads, *l)
		}
	}
	return out, nil
}
