package models

type Role string

const (
	RoleDirector Role = "DIRECTOR"
	RoleManager  Role = "MANAGER"
	RoleDesigner Role = "DESIGNER"
	RolePrinter  Role = "PRINTER"
)

var Roles = []Role{RoleDirector, RoleManager, RoleDesigner, RolePrinter}

var roleLabels = map[Role]string{
	RoleDirector: "Director",
	RoleManager:  "Manager",
	RoleDesigner: "Designer",
	RolePrinter:  "Printer",
}

func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

func (r Role) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return string(r)
}

// User is the profile of the person operating this instance.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// DefaultUser is returned when no profile has been stored yet.
var DefaultUser = User{
	ID:   "me",
	Name: "Alex Smirnov",
	Role: RoleManager,
}

// TeamMember is an entry of the static team roster.
type TeamMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

var TeamMembers = []TeamMember{
	{ID: "u1", Name: "Ivan Petrov", Role: RoleDirector},
	{ID: "u2", Name: "Anna Sidorova", Role: RoleManager},
	{ID: "u3", Name: "Dmitry Volkov", Role: RolePrinter},
	{ID: "u4", Name: "Maria Kozlova", Role: RoleDesigner},
}
