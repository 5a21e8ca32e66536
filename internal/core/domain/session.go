package domain

import "time"

// StoredSession is the record the login flow writes to the session store and
// the access guard reads on every protected request. The guard only ever
// reads or deletes it.
type StoredSession struct {
	ID        string
	UserID    string
	Token     string
	CreatedAt time.Time
}
