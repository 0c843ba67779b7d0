package cli

import (
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
)

// formField is one prompt of an interactive form. An empty answer keeps
// the current value.
type formField struct {
	label string
	get   func() string
	set   func(string) error
}

func text(label string, v *string) formField {
	return formField{
		label: label,
		get:   func() string { return *v },
		set:   func(s string) error { *v = s; return nil },
	}
}

func number(label string, v *int) formField {
	return formField{
		label: label,
		get: func() string {
			if *v == 0 {
				return ""
			}
			return strconv.Itoa(*v)
		},
		set: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil {
				return &models.ValidationError{Fields: map[string]string{label: "must be a number"}}
			}
			*v = n
			return nil
		},
	}
}

// fill runs the prompts of fields in order.
func (a *App) fill(fields []formField) error {
	for _, f := range fields {
		prompt := f.label
		if cur := f.get(); cur != "" {
			prompt = fmt.Sprintf("%s [%s]", f.label, cur)
		}

		answer, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		if answer == "" {
			continue
		}
		if err := f.set(answer); err != nil {
			return err
		}
	}
	return nil
}

func imageFields(img *models.Image) []formField {
	return []formField{
		text("Image URL", &img.URL),
		text("Image alt text", &img.Alt),
	}
}

func addressFields(addr *models.Address) []formField {
	return []formField{
		text("State (optional)", &addr.State),
		text("Country", &addr.Country),
		text("City", &addr.City),
		text("Street", &addr.Street),
		number("House number", &addr.HouseNumber),
		number("Zip", &addr.Zip),
	}
}

func nameFields(n *models.Name) []formField {
	return []formField{
		text("First name", &n.First),
		text("Middle name (optional)", &n.Middle),
		text("Last name", &n.Last),
	}
}

func cardFields(in *models.CardInput) []formField {
	fields := []formField{
		text("Title", &in.Title),
		text("Subtitle", &in.Subtitle),
		text("Description", &in.Description),
		text("Phone", &in.Phone),
		text("Email", &in.Email),
		text("Web (optional)", &in.Web),
	}
	fields = append(fields, imageFields(&in.Image)...)
	return append(fields, addressFields(&in.Address)...)
}

func profileFields(p *models.ProfileUpdate) []formField {
	fields := nameFields(&p.Name)
	fields = append(fields, text("Phone", &p.Phone))
	fields = append(fields, imageFields(&p.Image)...)
	return append(fields, addressFields(&p.Address)...)
}

// registrationFields leaves the password out; it is read without echo.
func registrationFields(u *models.User) []formField {
	fields := nameFields(&u.Name)
	fields = append(fields, text("Phone", &u.Phone), text("Email", &u.Email))
	fields = append(fields, text("Image URL (optional)", &u.Image.URL))
	return append(fields, addressFields(&u.Address)...)
}
