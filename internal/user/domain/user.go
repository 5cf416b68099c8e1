package domain

type ID int

// User is a value type; the registry hands out copies, never references.
type User struct {
	ID       ID     `json:"id" validate:"gte=1"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password"`
}

func NewUser(id ID, username, password string) User {
	return User{
		ID:       id,
		Username: username,
		Password: password,
	}
}

// Summary is what gets logged or printed; it never carries the password.
type Summary struct {
	ID       ID
	Username string
}

func (u User) Summary() Summary {
	return Summary{ID: u.ID, Username: u.Username}
}
