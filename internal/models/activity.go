package models

// Activity represents a shared cost recorded against a group.
type Activity struct {
	// ID is the unique identifier for the activity (UUID format).
	ID string

	// GroupID is the group that owns this activity.
	GroupID string

	// Title is the human-readable name (e.g., "Dinner", "Museum tickets").
	// Auto-generated from the participants when left empty.
	Title string

	// Amount is the total cost in minor currency units.
	Amount int64

	// PayerID is the member who paid the full amount.
	PayerID string

	// Policy is the allocation policy: "equal", "shares" or "exact".
	Policy string

	// Participants are the members sharing the cost, in the order given.
	Participants []Participant

	// CreatedAt is the Unix timestamp when the activity was recorded.
	CreatedAt int64
}

// Participant is one member's part in an activity.
type Participant struct {
	// MemberID references a member of the activity's group.
	MemberID string

	// Weight is the member's share weight, used by the "shares" policy.
	Weight int64

	// ExactAmount is the member's fixed share in minor units, used by the
	// "exact" policy.
	ExactAmount int64
}

// ParticipantIDs returns the participant member IDs in order.
func (a *Activity) ParticipantIDs() []string {
	ids := make([]string, len(a.Participants))
	for i, p := range a.Participants {
		ids[i] = p.MemberID
	}
	return ids
}
