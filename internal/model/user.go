package model

// User is the privileged account record. Only signin, code verification and
// password flows may read it; it is never serialized to API responses.
//
// The pending-code pairs are both-present or both-absent: issuing a code sets
// hash and timestamp together, consuming or expiring it clears both.
type User struct {
	ID                       string
	Email                    string
	PasswordHash             string
	Verified                 bool
	VerificationCodeHash     *string
	VerificationCodeIssuedAt *int64
	ResetCodeHash            *string
	ResetCodeIssuedAt        *int64
	Ctime                    int64
	Mtime                    int64
}

// UserView is the public projection of an account. Credential and code fields
// are excluded by construction, not by per-field filtering.
type UserView struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
	Ctime    int64  `json:"ctime"`
	Mtime    int64  `json:"mtime"`
}

func (u *User) View() *UserView {
	return &UserView{
		ID:       u.ID,
		Email:    u.Email,
		Verified: u.Verified,
		Ctime:    u.Ctime,
		Mtime:    u.Mtime,
	}
}
