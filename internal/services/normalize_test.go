package services

import (
	"errors"
	"testing"

	"github.com/estately/backend/internal/models"
)

func TestDeriveYearBuilt(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantNil bool
		wantErr bool
	}{
		{in: "", wantNil: true},
		{in: "   ", wantNil: true},
		{in: "2015", want: 2015},
		{in: "2015-06-01", want: 2015},
		{in: "2015-06", want: 2015},
		{in: "2019-11-20T10:30:00Z", want: 2019},
		{in: "March 3, 1999", want: 1999},
		{in: "built around 1987", want: 1987},
		{in: "recently", wantErr: true},
	}
	for _, tt := range tests {
		got, err := DeriveYearBuilt(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidYearBuilt) {
				t.Errorf("DeriveYearBuilt(%q) err = %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("DeriveYearBuilt(%q) err = %v", tt.in, err)
			continue
		}
		if tt.wantNil {
			if got != nil {
				t.Errorf("DeriveYearBuilt(%q) = %d, want nil", tt.in, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Errorf("DeriveYearBuilt(%q) = %v, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeEnum(t *testing.T) {
	tests := map[string]string{
		"EAST":        "East",
		"east":        "East",
		"  west ":     "West",
		"corporation": "Corporation",
		"":            "",
	}
	for in, want := range tests {
		if got := normalizeEnum(in); got != want {
			t.Errorf("normalizeEnum(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestApplyInputClearsPricePerSqftWithoutPrice(t *testing.T) {
	p := &models.Property{}
	in := &models.PropertyInput{Title: "t", Category: "plot", Sqft: floatPtr(100), PricePerSqft: floatPtr(42)}
	if err := applyInput(p, in, p.CreatedAt); err != nil {
		t.Fatal(err)
	}
	if p.PricePerSqft != nil {
		t.Errorf("pricePerSqft = %v, want nil with zero price", *p.PricePerSqft)
	}
}

func TestApplyInputDerivesPricePerSqft(t *testing.T) {
	tests := []struct {
		name string
		in   models.PropertyInput
		want *float64
	}{
		{"recomputed from price and sqft", models.PropertyInput{Category: "plot", Price: 1000, Sqft: floatPtr(3), PricePerSqft: floatPtr(1)}, floatPtr(333.33)},
		{"no sqft drops client value", models.PropertyInput{Category: "land", Price: 100, Acres: floatPtr(2), PricePerSqft: floatPtr(999)}, nil},
		{"zero sqft drops client value", models.PropertyInput{Category: "house", Price: 100, Sqft: floatPtr(0), PricePerSqft: floatPtr(5)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &models.Property{}
			if err := applyInput(p, &tt.in, p.CreatedAt); err != nil {
				t.Fatal(err)
			}
			got := p.PricePerSqft
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("pricePerSqft = %v, want nil", *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("pricePerSqft = %v, want %v", got, *tt.want)
			}
		})
	}
}
