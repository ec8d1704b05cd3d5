package workforce

// =============================================================================
// VISIBILITY POLICY - Who can see whom
// =============================================================================

// VisibleMembers applies the role-based visibility policy:
//   - Super Admin sees every member
//   - Team Lead sees their direct reports plus themselves
//   - Employee sees only themselves
//
// The returned slice preserves the input order and never contains
// duplicates (a lead reporting to themselves appears once).
func VisibleMembers(viewer Member, all []Member) []Member {
	switch viewer.Role {
	case RoleSuperAdmin:
		out := make([]Member, len(all))
		copy(out, all)
		return out

	case RoleTeamLead:
		out := []Member{viewer}
		for _, m := range all {
			if m.ID == viewer.ID {
				continue
			}
			if m.ReportsTo == viewer.ID {
				out = append(out, m)
			}
		}
		return out

	default:
		return []Member{viewer}
	}
}

// CanSee reports whether the viewer may see the target member's data.
func CanSee(viewer Member, targetID string, all []Member) bool {
	for _, m := range VisibleMembers(viewer, all) {
		if m.ID == targetID {
			return true
		}
	}
	return false
}

// CanEditEntries reports whether the viewer may create, edit or delete time
// entries owned by the target member: owners always, Super Admins always,
// Team Leads for their direct reports.
func CanEditEntries(viewer Member, target Member) bool {
	if viewer.ID == target.ID {
		return true
	}
	if viewer.Role == RoleSuperAdmin {
		return true
	}
	return viewer.Role == RoleTeamLead && target.ReportsTo == viewer.ID
}
