package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrimaryImageURL(t *testing.T) {
	t.Run("flagged primary wins", func(t *testing.T) {
		p := Property{
			ImageURL: "/uploads/legacy.jpg",
			Images: []PropertyImage{
				{URL: "/uploads/first.jpg", OrderIndex: 0},
				{URL: "/uploads/flagged.jpg", OrderIndex: 1, IsPrimary: true},
			},
		}
		require.Equal(t, "/uploads/flagged.jpg", p.PrimaryImageURL())
	})

	t.Run("lowest order index when nothing flagged", func(t *testing.T) {
		p := Property{
			ImageURL: "/uploads/legacy.jpg",
			Images: []PropertyImage{
				{URL: "/uploads/second.jpg", OrderIndex: 2},
				{URL: "/uploads/first.jpg", OrderIndex: 1},
			},
		}
		require.Equal(t, "/uploads/first.jpg", p.PrimaryImageURL())
	})

	t.Run("legacy field when gallery is empty", func(t *testing.T) {
		p := Property{ImageURL: "/uploads/legacy.jpg"}
		require.Equal(t, "/uploads/legacy.jpg", p.PrimaryImageURL())
	})

	t.Run("empty when nothing is set", func(t *testing.T) {
		var p Property
		require.Equal(t, "", p.PrimaryImageURL())
	})
}

func TestParsePropertyType(t *testing.T) {
	cases := map[string]PropertyType{
		"house":     TypeHouse,
		"apartment": TypeApartment,
		"townhouse": TypeTownhouse,
		"villa":     TypeVilla,
		"0":         TypeHouse,
		"3":         TypeVilla,
	}
	for input, want := range cases {
		got, ok := ParsePropertyType(input)
		require.True(t, ok, input)
		require.Equal(t, want, got, input)
	}

	_, ok := ParsePropertyType("castle")
	require.False(t, ok)
	_, ok = ParsePropertyType("9")
	require.False(t, ok)
}

func TestUserRoleIsValid(t *testing.T) {
	require.True(t, RoleRenter.IsValid())
	require.True(t, RoleLandlord.IsValid())
	require.True(t, RoleAdmin.IsValid())
	// The deleted tier is a storage state, never a valid assignment.
	require.False(t, RoleDeleted.IsValid())
	require.False(t, UserRole(7).IsValid())
}

func TestBookingStatusIsActive(t *testing.T) {
	require.True(t, BookingPending.IsActive())
	require.True(t, BookingConfirmed.IsActive())
	require.False(t, BookingCancelled.IsActive())
	require.False(t, BookingCompleted.IsActive())
}
