package constants

// Session / context keys
const (
	SessionName      = "taskdesk_session"
	ContextKeyUserID = "user_id"
)

// Validation limits
const (
	MinUsernameLength = 4
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Well-known preference keys
const (
	PrefTheme               = "theme"
	PrefFontSize            = "font_size"
	PrefEnableNotifications = "enable_notifications"
	PrefEmailNotification   = "email_notification"
)

// Activity types recorded in the user_activity log
const (
	ActivityRegistered     = "Registered"
	ActivityLogin          = "Login"
	ActivityLogout         = "Logout"
	ActivityTaskCreated    = "TaskCreated"
	ActivityTaskUpdated    = "TaskUpdated"
	ActivityTaskDeleted    = "TaskDeleted"
	ActivityPrefUpdated    = "PreferenceUpdated"
	ActivityProfileUpdated = "ProfileUpdated"
	ActivityPasswordChange = "PasswordChanged"
	ActivityTasksImported  = "TasksImported"
)

// Activity outcome recorded alongside login attempts
const (
	ActivityStatusSuccess = "Success"
	ActivityStatusFailure = "Failure"
)
