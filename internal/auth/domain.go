package auth

import "time"

// NoSession is the sentinel for an absent session id or token, used
// when the request carries no parseable cookie pair.
const NoSession int64 = -1

// Session binds a random token and a store-assigned id to a user.
// Both id and token must match for the session to resolve.
type Session struct {
	ID        int64
	Token     int64
	UserID    int64
	CreatedAt time.Time
}
