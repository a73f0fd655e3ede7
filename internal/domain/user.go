package domain

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleVendor   Role = "VENDOR"
	RoleAdmin    Role = "ADMIN"
)

type User struct {
	ID                int32  `json:"id"`
	Email             string `json:"email"`
	PasswordHash      string `json:"-"`
	Name              string `json:"name"`
	Role              Role   `json:"role"`
	Verified          bool   `json:"verified"`
	VerificationToken string `json:"-"`
	CreatedOn         string `json:"created_on"`
	UpdatedOn         string `json:"updated_on"`
}

// Principal is the authenticated identity for one request. Lifecycle
// operations receive it explicitly; they never read ambient session
// state.
type Principal struct {
	UserID int32
	Role   Role
}
