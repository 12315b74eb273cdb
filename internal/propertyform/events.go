package propertyform

import "github.com/estately/backend/internal/models"

// Event is one edit to a draft. The set of events is closed.
type Event interface {
	apply(d *Draft)
}

// FieldChanged sets a field to the typed text. Editing sqft or ankanam
// rewrites the other from the 36:1 ratio.
type FieldChanged struct {
	Field Field
	Value string
}

// CategoryChanged switches the draft's category, clearing the fields the
// new category does not carry. Invalid or unchanged categories are ignored.
type CategoryChanged struct {
	Category Category
}

// AmenityToggled adds or removes one amenity id.
type AmenityToggled struct {
	ID      string
	Checked bool
}

type LocationChanged struct {
	Location models.Location
}

// FeaturedImageSet replaces the featured image; nil clears it.
type FeaturedImageSet struct {
	Image *models.MediaFile
}

// MediaAdded appends files, skipping ids already attached.
type MediaAdded struct {
	Files []models.MediaFile
}

type MediaRemoved struct {
	FileID string
}

type FeaturedChanged struct {
	Featured bool
}

// Apply returns the draft that results from e. d itself is never modified.
// The price-per-sqft field is recomputed after every event.
func Apply(d Draft, e Event) Draft {
	next := d.clone()
	if e != nil {
		e.apply(&next)
	}
	next.recomputePricePerSqft()
	return next
}

// ApplyAll folds events over d in order.
func ApplyAll(d Draft, events ...Event) Draft {
	for _, e := range events {
		d = Apply(d, e)
	}
	return d
}

func (e FieldChanged) apply(d *Draft) {
	if e.Field == "" {
		return
	}
	d.set(e.Field, e.Value)
	d.deriveArea(e.Field)
}

func (e CategoryChanged) apply(d *Draft) {
	if !e.Category.Valid() || e.Category == d.Category {
		return
	}
	for _, f := range clearedOnSwitch[e.Category] {
		d.set(f, "")
	}
	d.Category = e.Category
}

func (e AmenityToggled) apply(d *Draft) {
	if e.ID == "" {
		return
	}
	if e.Checked {
		if !d.HasAmenity(e.ID) {
			d.Amenities = append(d.Amenities, e.ID)
		}
		return
	}
	kept := d.Amenities[:0]
	for _, a := range d.Amenities {
		if a != e.ID {
			kept = append(kept, a)
		}
	}
	d.Amenities = kept
}

func (e LocationChanged) apply(d *Draft) {
	d.Location = e.Location
}

func (e FeaturedImageSet) apply(d *Draft) {
	if e.Image == nil {
		d.FeaturedImage = nil
		return
	}
	img := *e.Image
	d.FeaturedImage = &img
}

func (e MediaAdded) apply(d *Draft) {
	for _, f := range e.Files {
		dup := false
		for _, existing := range d.MediaFiles {
			if existing.FileID == f.FileID {
				dup = true
				break
			}
		}
		if !dup {
			d.MediaFiles = append(d.MediaFiles, f)
		}
	}
}

func (e MediaRemoved) apply(d *Draft) {
	kept := d.MediaFiles[:0]
	for _, f := range d.MediaFiles {
		if f.FileID != e.FileID {
			kept = append(kept, f)
		}
	}
	d.MediaFiles = kept
}

func (e FeaturedChanged) apply(d *Draft) {
	d.Featured = e.Featured
}
