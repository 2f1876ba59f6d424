package core

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Principal identifies the authenticated caller of a request.
// Until real authentication lands, the wiring injects a fixed principal
// through the same seam the auth middleware will use.
type Principal struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Roles []string           `json:"roles"`
}

func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (p Principal) IsTeacher() bool { return p.HasRole(RoleTeacher) }
func (p Principal) IsStudent() bool { return p.HasRole(RoleStudent) }
