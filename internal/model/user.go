package model

import "time"

// User represents a registered account. The username is the primary key;
// there is no separate numeric id.
type User struct {
	Username  string
	Groups    []GroupID // references to groups, not ownership
	CreatedAt time.Time
}

// HasGroup reports whether the user's reference list contains the group
func (u *User) HasGroup(id GroupID) bool {
	for _, g := range u.Groups {
		if g == id {
			return true
		}
	}
	return false
}

// RemoveGroup removes the group from the user's reference list.
// Returns false if the group was not referenced.
func (u *User) RemoveGroup(id GroupID) bool {
	for i, g := range u.Groups {
		if g == id {
			u.Groups = append(u.Groups[:i], u.Groups[i+1:]...)
			return true
		}
	}
	return false
}
