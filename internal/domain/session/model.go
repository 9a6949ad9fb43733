package session

// Role names issued by the API.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleMember  = "member"
)

// Credentials is the persisted login state of the current user.
type Credentials struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Authenticated reports whether a token is present.
func (c Credentials) Authenticated() bool {
	return c.Token != ""
}

// CanManageProjects reports whether the role sees create/edit/delete controls.
// It is a presentation hint only; the API enforces authorization.
func (c Credentials) CanManageProjects() bool {
	return c.Role == RoleAdmin || c.Role == RoleManager
}

// User is an account known to the API.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
