package teacher

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
)

// DefaultProfileImage is assigned when no avatar is supplied.
const DefaultProfileImage = "https://avatar.iran.liara.run/public/boy"

// Teacher is a teacher profile, keyed by unique email.
type Teacher struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Email         string             `json:"email" bson:"email"`
	Phone         string             `json:"phone" bson:"phone"`
	Address       string             `json:"address" bson:"address"`
	Qualification string             `json:"qualification" bson:"qualification"`
	Gender        string             `json:"gender" bson:"gender"`
	ProfileImage  string             `json:"profileImage" bson:"profileImage"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"` // UTC
}

// NewTeacher contains information needed to create a new Teacher.
type NewTeacher struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	Address       string `json:"address" validate:"required"`
	Qualification string `json:"qualification" validate:"required"`
	Gender        string `json:"gender" validate:"required,oneof=Male Female"`
	ProfileImage  string `json:"profileImage" validate:"omitempty,url"`
}

func (nt *NewTeacher) Validate() error {
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.Phone = core.CleanString(nt.Phone)
	nt.Address = core.CleanString(nt.Address)
	nt.Qualification = core.CleanString(nt.Qualification)
	return core.Validate.Struct(nt)
}

// UpdateTeacher defines what information may be provided to modify an
// existing Teacher. Omitted fields keep their current value.
type UpdateTeacher struct {
	Name          string `json:"name"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Qualification string `json:"qualification"`
	Gender        string `json:"gender" validate:"omitempty,oneof=Male Female"`
	ProfileImage  string `json:"profileImage" validate:"omitempty,url"`
}

func (ut *UpdateTeacher) Validate(orig Teacher) error {
	if name := core.CleanString(ut.Name); name != "" {
		ut.Name = name
	} else {
		ut.Name = orig.Name
	}
	if email := core.CleanString(ut.Email, true /* lower */); email != "" {
		ut.Email = email
	} else {
		ut.Email = orig.Email
	}
	if phone := core.CleanString(ut.Phone); phone != "" {
		ut.Phone = phone
	} else {
		ut.Phone = orig.Phone
	}
	if addr := core.CleanString(ut.Address); addr != "" {
		ut.Address = addr
	} else {
		ut.Address = orig.Address
	}
	if qual := core.CleanString(ut.Qualification); qual != "" {
		ut.Qualification = qual
	} else {
		ut.Qualification = orig.Qualification
	}
	if ut.Gender == "" {
		ut.Gender = orig.Gender
	}
	if ut.ProfileImage == "" {
		ut.ProfileImage = orig.ProfileImage
	}
	return core.Validate.Struct(ut)
}
