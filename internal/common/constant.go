package common

// Store keys under which the vault keeps its collections. The names match
// the local-storage keys of the web demo so exported data stays compatible.
const (
	UsersKey       = "users"
	CurrentUserKey = "currentUser"
)
