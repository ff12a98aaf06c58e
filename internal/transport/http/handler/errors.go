package handler

const (
	errInternalServer     = "Internal server error"
	errUserExists         = "User already exists"
	errInvalidCredentials = "Invalid Credentials"
	errTaskNotFound       = "Task not found"
	errTaskForbidden      = "Not authorized"
)
