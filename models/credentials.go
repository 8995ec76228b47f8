package models

type Credentials struct {
	UserId   int64
	Username string
	Role     Role
}

func (u User) IntoCredentials() Credentials {
	return Credentials{
		UserId:   u.Id,
		Username: u.Username,
		Role:     u.Role,
	}
}

func (c Credentials) IsAdmin() bool {
	return c.Role == ADMIN
}
