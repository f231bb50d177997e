package auth

// Role represents user permission levels
type Role string

const (
	RoleStudent Role = "student"
	RoleUser    Role = "user"
	RoleCook    Role = "cook"
	RoleAdmin   Role = "admin"
)

// Roles lists the roles an admin can assign, in display order
var Roles = []Role{RoleUser, RoleCook, RoleAdmin}

// Valid reports whether r is one of the assignable roles
func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return r == RoleStudent
}

// GroupType represents the kind of organisation a group belongs to
type GroupType string

const (
	GroupSchool     GroupType = "school"
	GroupUniversity GroupType = "university"
	GroupBusiness   GroupType = "business"
)

// GroupTypes lists the group types in display order
var GroupTypes = []GroupType{GroupSchool, GroupUniversity, GroupBusiness}

// Valid reports whether t is a known group type
func (t GroupType) Valid() bool {
	for _, gt := range GroupTypes {
		if t == gt {
			return true
		}
	}
	return false
}

// Group represents a group of users (a class, a faculty, a company)
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      GroupType `json:"type"`
	UserCount int       `json:"user_count"`
}

// User represents the profile returned by the backend on login.
// The group is a weak reference resolved by the backend for display.
type User struct {
	ID          string  `json:"id"`
	Login       string  `json:"login"`
	Role        Role    `json:"role"`
	DisplayName string  `json:"display_name"`
	Language    string  `json:"language,omitempty"`
	Theme       string  `json:"theme,omitempty"`
	GroupID     *string `json:"group_id,omitempty"`
	Group       *Group  `json:"group,omitempty"`
}

// Session is the authenticated state kept for one browser
type Session struct {
	Token string
	User  *User
}

// LoggedIn reports whether the session carries a token
func (s Session) LoggedIn() bool {
	return s.Token != ""
}

// Role returns the role of the session user, falling back to student
func (s Session) Role() Role {
	if s.User == nil || s.User.Role == "" {
		return RoleStudent
	}
	return s.User.Role
}
