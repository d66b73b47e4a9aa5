package models

// User is the authoritative credential record, mapped 1:1 with the users
// table. PasswordHash is opaque to every caller except the password package
// and is replaced only through Repository.UpdatePasswordHash.
type User struct {
	ID            int64
	RoleID        int64
	Username      string
	FirstName     string
	Email         string
	PasswordHash  string
	DegreeID      *int64
	RememberToken *string
	Phone         *int64
	Cip           *int64
}
