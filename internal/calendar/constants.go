package calendar

// OAuth scope and API identifiers for the calendar lookup.
const (
	ScopeCalendarReadonly = "https://www.googleapis.com/auth/calendar.readonly"

	PrimaryCalendarID = "primary"
	DefaultMaxResults = 10
)

// CalendarScopes defines the OAuth scopes requested during authorization.
// Changing them requires deleting the stored token.
var CalendarScopes = []string{ScopeCalendarReadonly}

// Console messages.
const (
	msgAuthorizeURL   = "Authorize this app by visiting this url: %s\n"
	msgEnterCode      = "Enter the code from that page here: "
	msgTokenStored    = "Token stored to %s\n"
	msgUpcomingEvents = "Upcoming %d events:\n"
	MsgNoEvents       = "No upcoming events found."
)
