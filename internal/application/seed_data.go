package application

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/oksasatya/blog-seed/pkg/validation"
)

// UserSeed is the attribute set for one seeded user. PasswordConfirmation is
// only checked against Password; it is never stored.
type UserSeed struct {
	Name                 string `json:"name" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,pwd"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// PostSeed is the attribute set for one seeded post. Author is the email of
// the owning UserSeed.
type PostSeed struct {
	Title  string `json:"title" validate:"required"`
	Body   string `json:"body" validate:"required"`
	Author string `json:"author" validate:"required,email"`
}

// Dataset is the full roster written by a seed run.
type Dataset struct {
	Users []UserSeed `json:"users" validate:"required,min=1,unique=Email,dive"`
	Posts []PostSeed `json:"posts" validate:"dive"`
}

const seedPassword = "password123"

// DefaultDataset returns a fresh copy of the built-in development roster.
func DefaultDataset() Dataset {
	const (
		alice   = "alice@example.com"
		bob     = "bob@example.com"
		charlie = "charlie@example.com"
	)
	return Dataset{
		Users: []UserSeed{
			{Name: "Alice Wonder", Email: alice, Password: seedPassword, PasswordConfirmation: seedPassword},
			{Name: "Bob Secret", Email: bob, Password: seedPassword, PasswordConfirmation: seedPassword},
			{Name: "Charlie Mystery", Email: charlie, Password: seedPassword, PasswordConfirmation: seedPassword},
		},
		Posts: []PostSeed{
			{
				Title:  "The Mystery of the Missing Coffee",
				Body:   "Someone keeps taking my coffee from the office fridge. I've marked it clearly with my name, but every morning it's gone. The investigation continues...",
				Author: alice,
			},
			{
				Title:  "My Secret Superpower",
				Body:   "I can predict exactly when the microwave will beep, even from another room. It's not that useful, but it's my hidden talent.",
				Author: bob,
			},
			{
				Title:  "Office Confession",
				Body:   "I'm the one who's been leaving positive sticky notes on everyone's computers. Seeing you all smile when you find them makes my day!",
				Author: charlie,
			},
			{
				Title:  "Late Night Coding Sessions",
				Body:   "My most productive coding happens at 2 AM when the world is quiet and it's just me and my computer. There's something magical about debugging in the dark.",
				Author: alice,
			},
			{
				Title:  "The Elevator Ritual",
				Body:   "I always press the elevator button exactly three times. I know it doesn't make it come faster, but I can't help myself. It's become my superstition.",
				Author: bob,
			},
		},
	}
}

// LoadDataset reads a JSON roster from path.
func LoadDataset(path string) (Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read seed file: %w", err)
	}
	var d Dataset
	if err := json.Unmarshal(b, &d); err != nil {
		return Dataset{}, &validation.ValidationError{Entity: "seed file", Fields: validation.ToDetails(err), Err: err}
	}
	return d, nil
}

// normalized returns a copy with emails trimmed and lowercased, so that
// uniqueness and author lookups ignore case.
func (d Dataset) normalized() Dataset {
	out := Dataset{
		Users: make([]UserSeed, len(d.Users)),
		Posts: make([]PostSeed, len(d.Posts)),
	}
	for i, u := range d.Users {
		u.Email = normalizeEmail(u.Email)
		out.Users[i] = u
	}
	for i, p := range d.Posts {
		p.Author = normalizeEmail(p.Author)
		out.Posts[i] = p
	}
	return out
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Validate checks every record and that each post's author is a seeded user.
func (d Dataset) Validate() error {
	if err := validation.Struct("seed", d); err != nil {
		return err
	}
	known := make(map[string]struct{}, len(d.Users))
	for _, u := range d.Users {
		known[normalizeEmail(u.Email)] = struct{}{}
	}
	fields := map[string]string{}
	for i, p := range d.Posts {
		if _, ok := known[normalizeEmail(p.Author)]; !ok {
			fields["posts["+strconv.Itoa(i)+"].author"] = "must reference a seeded user"
		}
	}
	if len(fields) > 0 {
		return &validation.ValidationError{Entity: "seed", Fields: fields}
	}
	return nil
}
