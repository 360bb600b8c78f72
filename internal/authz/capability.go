// Package authz maps roles to capabilities. Every gate in the client —
// command availability, dashboard sections, guarded actions — asks this
// package instead of comparing role strings inline, so the mapping lives
// in exactly one place. The server enforces the same rules; this is only
// the client-side mirror that keeps the UI honest.
package authz

import "github.com/Nafiz001/booknest-client/internal/user"

type Capability string

const (
	// Buyer capabilities.
	CapPlaceOrder     Capability = "place-order"
	CapCancelOwnOrder Capability = "cancel-own-order"
	CapPayOrder       Capability = "pay-order"
	CapReviewBook     Capability = "review-book"
	CapManageWishlist Capability = "manage-wishlist"
	CapViewInvoices   Capability = "view-invoices"

	// Librarian capabilities.
	CapManageOwnBooks   Capability = "manage-own-books"
	CapAdvanceOrder     Capability = "advance-order"
	CapViewSellerOrders Capability = "view-seller-orders"

	// Admin capabilities.
	CapManageUsers    Capability = "manage-users"
	CapChangeRole     Capability = "change-role"
	CapManageAllBooks Capability = "manage-all-books"
)

var grants = map[user.Role][]Capability{
	user.RoleUser: {
		CapPlaceOrder,
		CapCancelOwnOrder,
		CapPayOrder,
		CapReviewBook,
		CapManageWishlist,
		CapViewInvoices,
	},
	user.RoleLibrarian: {
		CapManageOwnBooks,
		CapAdvanceOrder,
		CapViewSellerOrders,
	},
	user.RoleAdmin: {
		CapManageUsers,
		CapChangeRole,
		CapManageAllBooks,
	},
}

// Can reports whether u holds the capability. A nil user holds none.
func Can(u *user.User, c Capability) bool {
	if u == nil {
		return false
	}
	for _, granted := range grants[u.Role] {
		if granted == c {
			return true
		}
	}
	return false
}

// Home returns the dashboard landing section for the user's role.
func Home(u *user.User) string {
	if u == nil {
		return ""
	}
	switch u.Role {
	case user.RoleAdmin:
		return "admin"
	case user.RoleLibrarian:
		return "librarian"
	default:
		return "user"
	}
}
