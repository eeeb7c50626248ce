package shared

const (
	UserID   = "user_id"
	UserRole = "user_role"

	RoleStudent = "student"
	RoleAdmin   = "admin"

	VoteTypeUp   = "up"
	VoteTypeDown = "down"

	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)
