package user

type Role string

const (
	RoleUser      Role = "user"
	RoleLibrarian Role = "librarian"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleLibrarian, RoleAdmin:
		return true
	}
	return false
}

// User mirrors the server's user record. Role is authoritative on the
// server; the client treats it as read-only and refreshes it on each
// session check.
type User struct {
	ID          string `json:"id"`
	SubjectID   string `json:"subjectId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photoURL"`
	Role        Role   `json:"role"`
}

// MirrorRequest is the payload that registers or updates this identity in
// the marketplace's user directory after provider sign-in.
type MirrorRequest struct {
	SubjectID   string `json:"subjectId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photoURL"`
}
