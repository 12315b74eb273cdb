package contracts

import (
	"errors"
	"testing"
)

func TestValidatePropertyAccepts(t *testing.T) {
	body := `{
		"title": "Corner Plot",
		"description": "East facing",
		"category": "plot",
		"price": 1200000,
		"sqft": 1800,
		"ankanam": 50,
		"lift": null,
		"amenities": ["road-access"],
		"featuredImage": {"fileId": "f1", "url": "/uploads/f1.jpg", "mime": "image/jpeg", "name": "a.jpg"},
		"mediaFiles": [],
		"yearBuilt": "2015-04-01",
		"location": {"city": "Vizag"}
	}`
	if err := ValidateProperty([]byte(body)); err != nil {
		t.Fatalf("ValidateProperty: %v", err)
	}
}

func TestValidatePropertyRejects(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing title", `{"description":"d","category":"plot","price":1}`, "title"},
		{"bad category", `{"title":"t","description":"d","category":"villa","price":1}`, "category"},
		{"negative price", `{"title":"t","description":"d","category":"plot","price":-5}`, "price"},
		{"fractional bedrooms", `{"title":"t","description":"d","category":"house","price":1,"bedrooms":2.5}`, "bedrooms"},
		{"media without url", `{"title":"t","description":"d","category":"plot","price":1,"mediaFiles":[{"fileId":"x"}]}`, "mediaFiles.0.url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProperty([]byte(tt.body))
			var serr *SchemaError
			if !errors.As(err, &serr) {
				t.Fatalf("err = %v, want *SchemaError", err)
			}
			if _, ok := serr.Fields[tt.field]; !ok {
				t.Errorf("fields = %v, want key %q", serr.Fields, tt.field)
			}
		})
	}
}

func TestValidatePropertyMalformed(t *testing.T) {
	err := ValidateProperty([]byte(`{"title":`))
	var serr *SchemaError
	if err == nil || errors.As(err, &serr) {
		t.Errorf("err = %v", err)
	}
}
