package entity

type UserRole string

const (
	RoleDefault UserRole = "default"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	Base
	Name      string   `json:"name"`
	Cellphone string   `json:"cellphone"`
	Role      UserRole `json:"type"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
