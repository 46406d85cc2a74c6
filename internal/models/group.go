package models

// Group represents a set of members sharing outing costs.
// A group exclusively owns its activities and settlements.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Ski Trip", "Friday Drinks").
	Name string

	// Members is the list of members in membership order.
	// The order is only used for display.
	Members []Member

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Member represents one person in a group.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// Name is the display name of the member.
	Name string
}

// MemberIDs returns the member IDs in membership order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}
	return ids
}
