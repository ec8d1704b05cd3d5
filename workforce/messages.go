package workforce

import "github.com/warp/timesheet-engine/calendar"

// =============================================================================
// PUSH MESSAGES - Date-windowed broadcasts
// =============================================================================

// PushMessage is an announcement shown to a set of receivers while its date
// window is open. Receivers is AppliesToAllMembers, AppliesToAllTeams, or an
// explicit list of team IDs.
type PushMessage struct {
	ID        string
	Context   string
	Body      string
	Window    calendar.Period
	Receivers string   // AppliesToAllMembers or AppliesToAllTeams, when TeamIDs is empty
	TeamIDs   []string // explicit team targeting, overrides Receivers
}

// ActiveFor reports whether the message is live on the given day and
// targeted at the member.
func (p PushMessage) ActiveFor(m Member, on calendar.Date) bool {
	if !p.Window.Contains(on) {
		return false
	}
	if len(p.TeamIDs) > 0 {
		for _, id := range p.TeamIDs {
			if m.TeamID != "" && m.TeamID == id {
				return true
			}
		}
		return false
	}
	switch p.Receivers {
	case AppliesToAllMembers:
		return true
	case AppliesToAllTeams:
		return m.TeamID != ""
	}
	return false
}

// ActiveMessages filters the snapshot's messages down to those live for the
// member on the given day, preserving input order.
func ActiveMessages(messages []PushMessage, m Member, on calendar.Date) []PushMessage {
	var out []PushMessage
	for _, msg := range messages {
		if msg.ActiveFor(m, on) {
			out = append(out, msg)
		}
	}
	return out
}
