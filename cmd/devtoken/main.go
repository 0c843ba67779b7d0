// Command devtoken mints HS256 tokens with the claim shape of the card
// directory backend, for running the CLI against a local backend.
//
//	devtoken -id 65f0c0ffee -business -secret s3cr3t
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/bizcards/internal/authtoken"
	"github.com/google/uuid"
)

func main() {
	var (
		id       = flag.String("id", "", "user id (random when empty)")
		admin    = flag.Bool("admin", false, "set the isAdmin claim")
		business = flag.Bool("business", false, "set the isBusiness claim")
		secret   = flag.String("secret", os.Getenv("BIZCARDS_JWT_SECRET"), "signing secret")
		ttl      = flag.Duration("ttl", 0, "token lifetime, 0 for no exp claim")
	)
	flag.Parse()

	tok, err := mint(*id, *admin, *business, []byte(*secret), *ttl, time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(tok)
}

func mint(id string, admin, business bool, secret []byte, ttl time.Duration, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("a signing secret is required (-secret or BIZCARDS_JWT_SECRET)")
	}
	if id == "" {
		id = uuid.NewString()
	}

	return authtoken.GenerateToken(authtoken.Claims{
		UserID:     id,
		IsAdmin:    admin,
		IsBusiness: business,
	}, secret, now, ttl)
}
