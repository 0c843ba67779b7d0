package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/bizcards/internal/client/catalog"
	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/client/policy"
	"github.com/dmitrijs2005/bizcards/internal/client/services"
	"github.com/dmitrijs2005/bizcards/internal/client/token"
)

// cardMarks are the per-viewer markers shown next to a card.
func cardMarks(c *token.Claims, card *models.Card) string {
	marks := []string{fmt.Sprintf("♥ %d", len(card.LikedBy))}
	if policy.HasLiked(c, card.LikedBy) {
		marks = append(marks, "favorite")
	}
	if policy.CanEdit(c, card) {
		marks = append(marks, "yours")
	}
	return strings.Join(marks, ", ")
}

func renderCards(w io.Writer, c *token.Claims, cards []models.Card) {
	if len(cards) == 0 {
		fmt.Fprintln(w, "No cards found")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSUBTITLE\t")
	for i := range cards {
		card := &cards[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", card.ID, card.Title, card.Subtitle, cardMarks(c, card))
	}
	_ = tw.Flush()
}

func renderPage(w io.Writer, c *token.Claims, p catalog.Page[models.Card], query string) {
	renderCards(w, c, p.Items)
	if p.Total == 0 {
		return
	}

	footer := fmt.Sprintf("Page %d of %d, %d cards", p.Number, p.TotalPages, p.Total)
	if query != "" {
		footer += fmt.Sprintf(" matching %q", query)
	}
	if p.HasNext() {
		footer += fmt.Sprintf(" (next: page %d)", p.Number+1)
	}
	fmt.Fprintln(w, footer)
	if !p.CachedAt.IsZero() {
		fmt.Fprintf(w, "Offline copy from %s\n", p.CachedAt.Local().Format("2006-01-02 15:04"))
	}
}

func renderCard(w io.Writer, c *token.Claims, card *models.Card) {
	fmt.Fprintf(w, "%s\n%s\n\n", card.Title, card.Subtitle)
	if card.Description != "" {
		fmt.Fprintf(w, "%s\n\n", card.Description)
	}
	fmt.Fprintf(w, "Phone:    %s\n", card.Phone)
	fmt.Fprintf(w, "Email:    %s\n", card.Email)
	if card.Web != "" {
		fmt.Fprintf(w, "Web:      %s\n", card.Web)
	}
	fmt.Fprintf(w, "Address:  %s\n", formatAddress(card.Address))
	if card.BizNumber != 0 {
		fmt.Fprintf(w, "Card no.: %d\n", card.BizNumber)
	}
	fmt.Fprintf(w, "Image:    %s (%s)\n", card.Image.URL, card.Image.Alt)
	fmt.Fprintf(w, "ID:       %s [%s]\n", card.ID, cardMarks(c, card))
}

func formatAddress(a models.Address) string {
	parts := []string{fmt.Sprintf("%s %d", a.Street, a.HouseNumber), a.City}
	if a.State != "" {
		parts = append(parts, a.State)
	}
	parts = append(parts, a.Country, fmt.Sprint(a.Zip))
	return strings.Join(parts, ", ")
}

func renderUser(w io.Writer, u *models.User) {
	fmt.Fprintf(w, "%s (%s)\n", u.Name.Full(), catalog.UserRole(*u))
	fmt.Fprintf(w, "Email:    %s\n", u.Email)
	fmt.Fprintf(w, "Phone:    %s\n", u.Phone)
	fmt.Fprintf(w, "Address:  %s\n", formatAddress(u.Address))
	fmt.Fprintf(w, "Image:    %s\n", u.Image.URL)
	if !u.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Joined:   %s\n", u.CreatedAt.Format("2006-01-02"))
	}
	fmt.Fprintf(w, "ID:       %s\n", u.ID)
}

func renderUsers(w io.Writer, users []services.UserSummary) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tCARDS")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", u.ID, u.Name.Full(), u.Email, u.Role, u.Cards)
	}
	_ = tw.Flush()
}
