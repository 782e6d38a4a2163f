package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageKey(t *testing.T) {
	tests := []struct {
		name string
		page Page
		want string
	}{
		{name: "home", page: Home(), want: "home"},
		{name: "login", page: Login(), want: "login"},
		{name: "profile", page: Profile("123"), want: "profile:123"},
		{name: "detail", page: Detail(42, "Book"), want: "detail:42:Book"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.page.Key())
		})
	}
}

func TestPageEquality(t *testing.T) {
	assert.Equal(t, Profile("123"), Profile("123"))
	assert.NotEqual(t, Profile("123"), Profile("456"))
	assert.NotEqual(t, Home(), Login())

	// Same value pushed twice must compare equal; identity is the value
	assert.True(t, Detail(1, "a") == Detail(1, "a"))
}

func TestPageValidate(t *testing.T) {
	assert.NoError(t, Home().Validate())
	assert.NoError(t, Profile("u1").Validate())
	assert.Error(t, Page{Kind: "settings"}.Validate())
	assert.Error(t, Page{Kind: KindProfile}.Validate())
	assert.Error(t, Page{Kind: KindDetail, ItemID: 7}.Validate())
}

func TestSnapshotAccessors(t *testing.T) {
	s := Snapshot{Seq: 3, Pages: []Page{Home(), Profile("123")}}

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, Profile("123"), s.Top())
	assert.Equal(t, []string{"home", "profile:123"}, s.Keys())
}
