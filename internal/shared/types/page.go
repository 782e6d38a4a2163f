package types

import (
	"fmt"
	"strconv"
)

// Kind discriminates page variants
type Kind string

const (
	KindHome    Kind = "home"
	KindLogin   Kind = "login"
	KindProfile Kind = "profile"
	KindDetail  Kind = "detail"
)

// Kinds lists every known page kind
func Kinds() []Kind {
	return []Kind{KindHome, KindLogin, KindProfile, KindDetail}
}

// ValidKind reports whether k names a known page variant
func ValidKind(k Kind) bool {
	switch k {
	case KindHome, KindLogin, KindProfile, KindDetail:
		return true
	}
	return false
}

// Page is an immutable navigable destination. Only the payload fields of the
// page's kind are set; the zero values of the others make Page comparable
// with ==.
type Page struct {
	Kind     Kind   `json:"kind"`
	UserID   string `json:"user_id,omitempty"`
	ItemID   int    `json:"item_id,omitempty"`
	ItemName string `json:"item_name,omitempty"`
}

// Home returns the home page
func Home() Page {
	return Page{Kind: KindHome}
}

// Login returns the login page
func Login() Page {
	return Page{Kind: KindLogin}
}

// Profile returns a profile page for the given user
func Profile(userID string) Page {
	return Page{Kind: KindProfile, UserID: userID}
}

// Detail returns a detail page for the given item
func Detail(itemID int, itemName string) Page {
	return Page{Kind: KindDetail, ItemID: itemID, ItemName: itemName}
}

// Key derives the identity string for the page from its kind and payload.
// It is stable across processes and used for rendering and equality checks,
// not for uniqueness within a stack.
func (p Page) Key() string {
	switch p.Kind {
	case KindProfile:
		return string(p.Kind) + ":" + p.UserID
	case KindDetail:
		return string(p.Kind) + ":" + strconv.Itoa(p.ItemID) + ":" + p.ItemName
	default:
		return string(p.Kind)
	}
}

// Validate checks the page against its variant's requirements
func (p Page) Validate() error {
	if !ValidKind(p.Kind) {
		return fmt.Errorf("unknown page kind %q", p.Kind)
	}
	if p.Kind == KindProfile && p.UserID == "" {
		return fmt.Errorf("profile page requires user_id")
	}
	if p.Kind == KindDetail && p.ItemName == "" {
		return fmt.Errorf("detail page requires item_name")
	}
	return nil
}
