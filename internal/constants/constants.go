package constants

const (
	// SessionCookieName is the cookie carrying the server-side session.
	SessionCookieName = "todo_session"

	// ContextKeyUserID is used both as the session key and the gin context key
	// for the authenticated user's ID.
	ContextKeyUserID = "user_id"
	// ContextKeyCurrentUser holds the loaded *models.User for the request.
	ContextKeyCurrentUser = "current_user"
	// ContextKeyTask holds the owned task resolved by RequireOwnedTask.
	ContextKeyTask = "task"

	// Flash message categories
	FlashError   = "error"
	FlashSuccess = "success"
)

// DateLayout is the wire and storage format of a task's due date.
const DateLayout = "2006-01-02"

// User-facing messages
const (
	MsgInvalidTaskForm     = "Please fill in all fields correctly"
	MsgTaskCreated         = "Task created!"
	MsgTaskUpdated         = "Task updated!"
	MsgUsernameTaken       = "Username already exists"
	MsgRegistered          = "Registration successful! Please log in."
	MsgInvalidRegistration = "Username and password are required"
	MsgPasswordEmpty       = "Password cannot be empty"
	MsgGenericError        = "Something went wrong. Please try again."
)
