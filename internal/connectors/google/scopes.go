package google

import "strings"

// OAuth2 scopes requested by the samples.
//
//nolint:gosec // G101: These are scope URLs, not credentials.
const (
	ScopeDrive                 = "https://www.googleapis.com/auth/drive"
	ScopeDriveFile             = "https://www.googleapis.com/auth/drive.file"
	ScopeDriveAppData          = "https://www.googleapis.com/auth/drive.appdata"
	ScopeDriveMetadataReadonly = "https://www.googleapis.com/auth/drive.metadata.readonly"
	ScopeDriveReadonly         = "https://www.googleapis.com/auth/drive.readonly"

	ScopeSpreadsheets         = "https://www.googleapis.com/auth/spreadsheets"
	ScopeSpreadsheetsReadonly = "https://www.googleapis.com/auth/spreadsheets.readonly"

	ScopePresentations         = "https://www.googleapis.com/auth/presentations"
	ScopePresentationsReadonly = "https://www.googleapis.com/auth/presentations.readonly"

	ScopeChatSpaces             = "https://www.googleapis.com/auth/chat.spaces"
	ScopeChatSpacesReadonly     = "https://www.googleapis.com/auth/chat.spaces.readonly"
	ScopeChatMessages           = "https://www.googleapis.com/auth/chat.messages"
	ScopeChatMessagesReadonly   = "https://www.googleapis.com/auth/chat.messages.readonly"
	ScopeChatMessagesCreate     = "https://www.googleapis.com/auth/chat.messages.create"
	ScopeChatMessagesReactions  = "https://www.googleapis.com/auth/chat.messages.reactions"
	ScopeChatMemberships        = "https://www.googleapis.com/auth/chat.memberships"
	ScopeChatMembershipsRead    = "https://www.googleapis.com/auth/chat.memberships.readonly"
	ScopeChatBot                = "https://www.googleapis.com/auth/chat.bot"
	ScopeChatUsersSpaceSettings = "https://www.googleapis.com/auth/chat.users.spacesettings"

	ScopeFormsBody              = "https://www.googleapis.com/auth/forms.body"
	ScopeFormsBodyReadonly      = "https://www.googleapis.com/auth/forms.body.readonly"
	ScopeFormsResponsesReadonly = "https://www.googleapis.com/auth/forms.responses.readonly"

	ScopeAdminDirectoryUserReadonly = "https://www.googleapis.com/auth/admin.directory.user.readonly"
	ScopeAdminReportsAuditReadonly  = "https://www.googleapis.com/auth/admin.reports.audit.readonly"
	ScopeAppsOrder                  = "https://www.googleapis.com/auth/apps.order"

	ScopeCalendar         = "https://www.googleapis.com/auth/calendar"
	ScopeCalendarReadonly = "https://www.googleapis.com/auth/calendar.readonly"

	ScopeGmailReadonly = "https://www.googleapis.com/auth/gmail.readonly"
	ScopeGmailCompose  = "https://www.googleapis.com/auth/gmail.compose"

	ScopeContactsReadonly = "https://www.googleapis.com/auth/contacts.readonly"

	ScopeClassroomCoursesReadonly = "https://www.googleapis.com/auth/classroom.courses.readonly"

	ScopeTasksReadonly = "https://www.googleapis.com/auth/tasks.readonly"

	ScopeDocumentsReadonly = "https://www.googleapis.com/auth/documents.readonly"

	ScopeScriptProjects = "https://www.googleapis.com/auth/script.projects"

	ScopeMeetingSpaceCreated = "https://www.googleapis.com/auth/meetings.space.created"
)

const scopePrefix = "https://www.googleapis.com/auth/"

// ExpandScope turns a short scope name such as "drive.readonly" into its URL.
// Full URLs and OpenID scopes are returned unchanged.
func ExpandScope(scope string) string {
	scope = strings.TrimSpace(scope)
	switch {
	case scope == "", strings.Contains(scope, "://"):
		return scope
	case scope == "openid", scope == "email", scope == "profile":
		return scope
	default:
		return scopePrefix + scope
	}
}

// ShortScope strips the common scope URL prefix for display.
func ShortScope(scope string) string {
	return strings.TrimPrefix(scope, scopePrefix)
}
