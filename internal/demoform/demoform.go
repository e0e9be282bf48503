// Package demoform ships the sample fragments the playground mounts and the
// export command serializes. Each fragment is a named subtree with a parent
// path; a few nest under other fragments so mount order is visible in the
// event history.
package demoform

import (
	"strings"
	"unicode"

	"github.com/formdeck/formdeck/internal/formpath"
	"github.com/formdeck/formdeck/internal/formtree"
	"github.com/formdeck/formdeck/internal/registry"
)

// FieldSpec describes one field in a fragment.
type FieldSpec struct {
	Key         string
	Label       string
	Placeholder string
	Initial     any

	// Validate, when set, is wired into the field's change hook: every
	// SetValue marks the field touched and re-checks validity.
	Validate func(any) bool
}

// Fragment is a mountable subtree of the demo form. A fragment with an
// empty Parent is a root form; all others attach under their parent path.
type Fragment struct {
	Name   string
	Parent string
	Title  string
	Fields []FieldSpec
}

// Path returns the dotted path the fragment occupies once mounted.
func (f Fragment) Path() formpath.Path {
	return formpath.Parse(f.Parent).Join(f.Name)
}

// Build constructs the fragment's subtree. Fields attach in declaration
// order and each carries a change hook marking it touched and re-validating
// on every SetValue.
func (f Fragment) Build() *formtree.Group {
	group := formtree.NewGroup()
	for _, spec := range f.Fields {
		field := formtree.NewField(spec.Initial)
		validate := spec.Validate
		field.WithOnChange(func(value any) {
			field.SetTouched(true)
			if validate != nil {
				field.SetValid(validate(value))
			}
		})
		group.Attach(spec.Key, field)
	}
	return group
}

// Mount builds the fragment and registers it. Root fragments overwrite any
// previous root of the same name; nested ones return the registry's error
// when the parent path is missing or the key is taken.
func Mount(reg *registry.Registry, f Fragment, opts ...registry.Option) (registry.Event, error) {
	group := f.Build()
	if f.Parent == "" {
		return reg.RegisterRoot(f.Name, group), nil
	}
	return reg.RegisterElement(formpath.Parse(f.Parent), f.Name, group, opts...)
}

// MountAll mounts every catalog fragment in declaration order, which
// satisfies each fragment's parent dependency. Used by the export command
// and tests to assemble the full demo form.
func MountAll(reg *registry.Registry) error {
	for _, f := range Catalog() {
		if _, err := Mount(reg, f); err != nil {
			return err
		}
	}
	return nil
}

// ByName looks a fragment up in the catalog.
func ByName(name string) (Fragment, bool) {
	for _, f := range Catalog() {
		if f.Name == name {
			return f, true
		}
	}
	return Fragment{}, false
}

// Catalog returns the demo fragments in a mountable order: parents precede
// children. The playground sidebar lists them in this order.
func Catalog() []Fragment {
	return []Fragment{
		{
			Name:  "account",
			Title: "Account",
			Fields: []FieldSpec{
				{Key: "email", Label: "Email", Placeholder: "you@example.com", Initial: "", Validate: validEmail},
				{Key: "password", Label: "Password", Initial: "", Validate: minLength(8)},
			},
		},
		{
			Name:   "profile",
			Parent: "account",
			Title:  "Profile",
			Fields: []FieldSpec{
				{Key: "display_name", Label: "Display name", Placeholder: "Ada", Initial: "", Validate: nonEmpty},
				{Key: "bio", Label: "Bio", Placeholder: "A short introduction", Initial: ""},
			},
		},
		{
			Name:   "shipping",
			Parent: "account",
			Title:  "Shipping",
			Fields: []FieldSpec{
				{Key: "street", Label: "Street", Initial: "", Validate: nonEmpty},
				{Key: "city", Label: "City", Initial: "", Validate: nonEmpty},
				{Key: "postal_code", Label: "Postal code", Initial: "", Validate: nonEmpty},
				{Key: "country", Label: "Country", Initial: "US"},
			},
		},
		{
			Name:   "payment",
			Parent: "account",
			Title:  "Payment",
			Fields: []FieldSpec{
				{Key: "card_number", Label: "Card number", Placeholder: "4242 4242 4242 4242", Initial: "", Validate: validCardNumber},
				{Key: "expiry", Label: "Expiry", Placeholder: "MM/YY", Initial: ""},
				{Key: "cvc", Label: "CVC", Initial: "", Validate: minLength(3)},
			},
		},
		{
			Name:   "preferences",
			Parent: "account.profile",
			Title:  "Preferences",
			Fields: []FieldSpec{
				{Key: "newsletter", Label: "Newsletter", Initial: false},
				{Key: "marketing", Label: "Marketing emails", Initial: false},
				{Key: "language", Label: "Language", Initial: "en", Validate: nonEmpty},
			},
		},
	}
}

func nonEmpty(value any) bool {
	s, ok := value.(string)
	return ok && strings.TrimSpace(s) != ""
}

func validEmail(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1
}

func minLength(n int) func(any) bool {
	return func(value any) bool {
		s, ok := value.(string)
		return ok && len(s) >= n
	}
}

// validCardNumber accepts 12-19 digits, ignoring spaces. Real card
// validation (Luhn, issuer ranges) is out of scope for a demo form.
func validCardNumber(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	digits := 0
	for _, r := range s {
		switch {
		case r == ' ':
		case unicode.IsDigit(r):
			digits++
		default:
			return false
		}
	}
	return digits >= 12 && digits <= 19
}
