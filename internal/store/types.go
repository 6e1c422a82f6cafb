package store

// Account is a registered user in the daemon's directory.
type Account struct {
	ID           string
	Username     string
	Phone        string
	PasswordHash string
	Name         string
	Avatar       string
	Status       string
	LastSeenAt   int64
	CreatedAt    int64
}

// DisplayName returns Name, or Username when no name was set.
func (a *Account) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Username
}
