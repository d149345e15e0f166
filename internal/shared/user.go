package shared

// User is the authenticated identity threaded through a request.
// The password hash never travels on this type; components that need
// it read it from the store and discard it.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
