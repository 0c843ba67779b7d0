package catalog

import (
	"testing"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(cards []models.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

var cards = []models.Card{
	{ID: "1", Title: "Pizza Place", Subtitle: "Italian", Description: "Wood fired", OwnerUserID: "u1", LikedBy: []string{"u2"}},
	{ID: "2", Title: "Barber", Subtitle: "Haircuts", Description: "Walk-ins welcome", OwnerUserID: "u1"},
	{ID: "3", Title: "Bakery", Subtitle: "Fresh PIZZA dough", Description: "Bread", OwnerUserID: "u3", LikedBy: []string{"u2", "u3"}},
}

func TestSearchCards(t *testing.T) {
	assert.Equal(t, []string{"1", "3"}, ids(SearchCards(cards, "pizza")))
	assert.Equal(t, []string{"2"}, ids(SearchCards(cards, "  WALK ")))
	assert.Equal(t, []string{"1", "2", "3"}, ids(SearchCards(cards, "")))
	assert.Empty(t, SearchCards(cards, "sushi"))
}

func TestSearchCards_DoesNotAliasInput(t *testing.T) {
	got := SearchCards(cards, "")
	got[0].ID = "changed"
	assert.Equal(t, "1", cards[0].ID)
}

func TestSearchUsers(t *testing.T) {
	users := []models.User{
		{ID: "a", Name: models.Name{First: "Ann", Last: "Admin"}, Email: "ann@x.io", IsAdmin: true},
		{ID: "b", Name: models.Name{First: "Bob", Last: "Baker"}, Email: "bob@bake.io", IsBusiness: true},
		{ID: "c", Name: models.Name{First: "Cy", Last: "Client"}, Email: "cy@x.io"},
	}

	find := func(q string) []string {
		var out []string
		for _, u := range SearchUsers(users, q) {
			out = append(out, u.ID)
		}
		return out
	}

	assert.Equal(t, []string{"b"}, find("bob baker"))
	assert.Equal(t, []string{"b"}, find("BUSINESS"))
	assert.Equal(t, []string{"c"}, find("customer"))
	assert.Equal(t, []string{"a", "c"}, find("x.io"))
}

func TestUserRole(t *testing.T) {
	assert.Equal(t, "admin", UserRole(models.User{IsAdmin: true, IsBusiness: true}))
	assert.Equal(t, "business", UserRole(models.User{IsBusiness: true}))
	assert.Equal(t, "customer", UserRole(models.User{}))
}

func TestFavoritesOf(t *testing.T) {
	assert.Equal(t, []string{"1", "3"}, ids(FavoritesOf(cards, "u2")))
	assert.Equal(t, []string{"3"}, ids(FavoritesOf(cards, "u3")))
	assert.Empty(t, FavoritesOf(cards, "u9"))
	assert.Empty(t, FavoritesOf(cards, ""))
}

func TestCountByOwner(t *testing.T) {
	assert.Equal(t, map[string]int{"u1": 2, "u3": 1}, CountByOwner(cards))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name        string
		number, per int
		want        Page[int]
		next, prev  bool
	}{
		{"first", 1, 3, Page[int]{Items: []int{1, 2, 3}, Number: 1, PerPage: 3, Total: 7, TotalPages: 3}, true, false},
		{"last partial", 3, 3, Page[int]{Items: []int{7}, Number: 3, PerPage: 3, Total: 7, TotalPages: 3}, false, true},
		{"past end clamps", 9, 3, Page[int]{Items: []int{7}, Number: 3, PerPage: 3, Total: 7, TotalPages: 3}, false, true},
		{"below one clamps", -2, 3, Page[int]{Items: []int{1, 2, 3}, Number: 1, PerPage: 3, Total: 7, TotalPages: 3}, true, false},
		{"default size", 1, 0, Page[int]{Items: items, Number: 1, PerPage: DefaultPerPage, Total: 7, TotalPages: 1}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(items, tt.number, tt.per)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Paginate mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.next, got.HasNext())
			assert.Equal(t, tt.prev, got.HasPrev())
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	got := Paginate([]string{}, 2, 5)
	require.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
	assert.Equal(t, 1, got.Number)
	assert.Equal(t, 0, got.TotalPages)
	assert.False(t, got.HasNext())
}
