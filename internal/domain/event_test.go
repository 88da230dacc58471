package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventClone(t *testing.T) {
	parking := "Lot B"
	tmpl := "Dear guest"
	e := &Event{
		ID:                 "ev-1",
		Venue:              Venue{Name: "Hall", Parking: &parking},
		InvitationTemplate: &tmpl,
		PhotoURLs:          []string{"a.jpg", "b.jpg"},
	}

	cp := e.Clone()
	require.Equal(t, e, cp)

	cp.PhotoURLs[0] = "x.jpg"
	*cp.Venue.Parking = "Lot C"
	*cp.InvitationTemplate = "Hi"

	assert.Equal(t, []string{"a.jpg", "b.jpg"}, e.PhotoURLs)
	assert.Equal(t, "Lot B", *e.Venue.Parking)
	assert.Equal(t, "Dear guest", *e.InvitationTemplate)
}

func TestEventClone_NilFieldsStayNil(t *testing.T) {
	cp := (&Event{ID: "ev-1"}).Clone()
	assert.Nil(t, cp.PhotoURLs)
	assert.Nil(t, cp.Venue.Parking)
	assert.Nil(t, cp.InvitationTemplate)
}
