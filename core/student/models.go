package student

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
)

// DefaultProfileImage is assigned when no avatar is supplied.
const DefaultProfileImage = "https://via.placeholder.com/150"

// Student is a student profile, keyed by unique email and registration number.
type Student struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name               string             `json:"name" bson:"name"`
	RegistrationNumber string             `json:"registrationNumber" bson:"registrationNumber"`
	Grade              string             `json:"grade" bson:"grade"`
	Age                int                `json:"age" bson:"age"`
	Gender             string             `json:"gender" bson:"gender"`
	Email              string             `json:"email" bson:"email"`
	ProfileImage       string             `json:"profileImage" bson:"profileImage"`
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name               string `json:"name" validate:"required"`
	RegistrationNumber string `json:"registrationNumber" validate:"required"`
	Grade              string `json:"grade" validate:"required"`
	Age                *int   `json:"age" validate:"required,gt=0"`
	Gender             string `json:"gender" validate:"required,oneof=Male Female"`
	Email              string `json:"email" validate:"required,email"`
	ProfileImage       string `json:"profileImage" validate:"omitempty,url"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.RegistrationNumber = core.CleanString(ns.RegistrationNumber)
	ns.Grade = core.CleanString(ns.Grade)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	return core.Validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an
// existing Student. Omitted fields keep their current value.
type UpdateStudent struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registrationNumber"`
	Grade              string `json:"grade"`
	Age                *int   `json:"age" validate:"omitempty,gt=0"`
	Gender             string `json:"gender" validate:"omitempty,oneof=Male Female"`
	Email              string `json:"email" validate:"omitempty,email"`
	ProfileImage       string `json:"profileImage" validate:"omitempty,url"`
}

func (us *UpdateStudent) Validate(orig Student) error {
	if name := core.CleanString(us.Name); name != "" {
		us.Name = name
	} else {
		us.Name = orig.Name
	}
	if regNo := core.CleanString(us.RegistrationNumber); regNo != "" {
		us.RegistrationNumber = regNo
	} else {
		us.RegistrationNumber = orig.RegistrationNumber
	}
	if grade := core.CleanString(us.Grade); grade != "" {
		us.Grade = grade
	} else {
		us.Grade = orig.Grade
	}
	if us.Age == nil {
		us.Age = &orig.Age
	}
	if us.Gender == "" {
		us.Gender = orig.Gender
	}
	if email := core.CleanString(us.Email, true /* lower */); email != "" {
		us.Email = email
	} else {
		us.Email = orig.Email
	}
	if us.ProfileImage == "" {
		us.ProfileImage = orig.ProfileImage
	}
	return core.Validate.Struct(us)
}
