package constants

// Course membership roles.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleTeacher,
		RoleAdmin,
	}

	// TeacherAndAbove may manage sessions and attendee records.
	TeacherAndAbove = []string{
		RoleTeacher,
		RoleAdmin,
	}
)

func IsManageRole(role string) bool {
	for _, r := range TeacherAndAbove {
		if r == role {
			return true
		}
	}
	return false
}
