package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/bizcards/internal/client/catalog"
	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/client/services"
	"github.com/dmitrijs2005/bizcards/internal/client/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardMarks(t *testing.T) {
	card := &models.Card{OwnerUserID: "u1", LikedBy: []string{"u1", "u2"}}

	assert.Equal(t, "♥ 2", cardMarks(nil, card))
	assert.Equal(t, "♥ 2, favorite", cardMarks(&token.Claims{SubjectID: "u2"}, card))
	assert.Equal(t, "♥ 2, favorite, yours", cardMarks(&token.Claims{SubjectID: "u1"}, card))
	assert.Equal(t, "♥ 2", cardMarks(&token.Claims{SubjectID: "u3", IsAdmin: true}, card), "admins do not own other cards")
}

func TestRenderPage(t *testing.T) {
	cards := make([]models.Card, 5)
	for i := range cards {
		cards[i] = models.Card{ID: string(rune('a' + i)), Title: "T", Subtitle: "S", LikedBy: []string{}}
	}

	var buf bytes.Buffer
	renderPage(&buf, nil, catalog.Paginate(cards, 2, 2), "t")
	out := buf.String()
	assert.Contains(t, out, "ID  TITLE")
	assert.Contains(t, out, `Page 2 of 3, 5 cards matching "t" (next: page 3)`)

	buf.Reset()
	renderPage(&buf, nil, catalog.Paginate(cards, 3, 2), "")
	assert.Contains(t, buf.String(), "Page 3 of 3, 5 cards\n")
	assert.NotContains(t, buf.String(), "Offline copy")

	buf.Reset()
	cached := catalog.Paginate(cards, 1, 10)
	cached.CachedAt = time.Date(2026, 5, 1, 9, 0, 0, 0, time.Local)
	renderPage(&buf, nil, cached, "")
	assert.Contains(t, buf.String(), "Offline copy from 2026-05-01 09:00\n")

	buf.Reset()
	renderPage(&buf, nil, catalog.Paginate([]models.Card{}, 1, 2), "")
	assert.Equal(t, "No cards found\n", buf.String())
}

func TestRenderCard(t *testing.T) {
	card := &models.Card{
		ID: "c1", Title: "Bakery", Subtitle: "Fresh", Description: "Since 1990",
		Phone: "0501234567", Email: "b@example.com", Web: "https://bakery.example",
		Image:     models.Image{URL: "https://img.example.com/b.png", Alt: "bread"},
		Address:   models.Address{State: "North", Country: "IL", City: "Haifa", Street: "Herzl", HouseNumber: 3, Zip: 3100},
		BizNumber: 1000042,
		LikedBy:   []string{},
	}

	var buf bytes.Buffer
	renderCard(&buf, nil, card)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Bakery\nFresh\n\nSince 1990\n"))
	assert.Contains(t, out, "Web:      https://bakery.example")
	assert.Contains(t, out, "Address:  Herzl 3, Haifa, North, IL, 3100")
	assert.Contains(t, out, "Card no.: 1000042")
	assert.Contains(t, out, "ID:       c1 [♥ 0]")
}

func TestRenderUsers(t *testing.T) {
	var buf bytes.Buffer
	renderUsers(&buf, nil)
	assert.Equal(t, "No users found\n", buf.String())

	buf.Reset()
	renderUsers(&buf, []services.UserSummary{{
		User:  models.User{ID: "u1", Name: models.Name{First: "Dana", Last: "Levi"}, Email: "d@example.com"},
		Role:  "business",
		Cards: 3,
	}})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"u1", "Dana", "Levi", "d@example.com", "business", "3"}, strings.Fields(lines[1]))
}

func TestRenderUser(t *testing.T) {
	var buf bytes.Buffer
	renderUser(&buf, &models.User{
		ID:         "u1",
		Name:       models.Name{First: "Dana", Middle: "R", Last: "Levi"},
		IsBusiness: true,
		CreatedAt:  time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	})
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Dana R Levi (business)\n"))
	assert.Contains(t, out, "Joined:   2024-03-01")
}

func TestFill(t *testing.T) {
	a := &App{out: &bytes.Buffer{}}

	in := models.CardInput{Title: "Old", Address: models.Address{Zip: 7}}
	a.reader = bufio.NewReader(strings.NewReader("New\n\n\n\n\n\n\n\n\n\n\n\n12\n\n"))

	require.NoError(t, a.fill(cardFields(&in)))
	assert.Equal(t, "New", in.Title)
	assert.Equal(t, 12, in.Address.HouseNumber)
	assert.Equal(t, 7, in.Address.Zip)
	assert.Contains(t, a.out.(*bytes.Buffer).String(), "Zip [7]")
}

func TestFill_StopsOnInputError(t *testing.T) {
	a := &App{out: &bytes.Buffer{}, reader: bufio.NewReader(strings.NewReader(""))}

	var p models.ProfileUpdate
	require.Error(t, a.fill(profileFields(&p)))
}
