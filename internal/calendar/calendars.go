package calendar

import (
	"context"

	gcal "google.golang.org/api/calendar/v3"
)

// CalendarInfo describes one calendar from the user's calendar list.
type CalendarInfo struct {
	ID          string
	Summary     string
	Description string
	AccessRole  string
	Primary     bool
}

// ListCalendars returns the calendars the credential can read, so a
// calendar_id other than "primary" can be configured.
func ListCalendars(ctx context.Context, client *AuthorizedClient, endpoint string) ([]CalendarInfo, error) {
	srv, err := newService(ctx, client, endpoint)
	if err != nil {
		return nil, err
	}

	var calendars []CalendarInfo
	call := srv.CalendarList.List().MinAccessRole("reader")
	err = call.Pages(ctx, func(page *gcal.CalendarList) error {
		for _, item := range page.Items {
			calendars = append(calendars, CalendarInfo{
				ID:          item.Id,
				Summary:     item.Summary,
				Description: item.Description,
				AccessRole:  item.AccessRole,
				Primary:     item.Primary,
			})
		}
		return nil
	})
	if err != nil {
		return nil, NewFlowError(RemoteQueryFailure, "list_calendars", "unable to retrieve calendar list").WithCause(err)
	}

	return calendars, nil
}
