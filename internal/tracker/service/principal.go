package service

// Principal is the authenticated caller of a service operation.
type Principal struct {
	UserID  string
	IsAdmin bool
}
