// Package api defines the request and response messages of the outingsplit
// RPC services. Messages travel as JSON; see Codec.
package api

// Money is an amount in minor units together with its decimal rendering.
type Money struct {
	Minor   int64  `json:"minor"`
	Display string `json:"display"`
}

type Member struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type Group struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	Members   []*Member `json:"members"`
	CreatedAt int64     `json:"created_at"`
}

type CreateGroupRequest struct {
	Name string `json:"name"`
	// Members are the display names of the initial members.
	Members []string `json:"members"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupId string `json:"group_id"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type AddMembersRequest struct {
	GroupId string   `json:"group_id"`
	Names   []string `json:"names"`
}

type AddMembersResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupId string `json:"group_id"`
}

type DeleteGroupResponse struct{}

type MemberBalance struct {
	MemberId   string `json:"member_id"`
	MemberName string `json:"member_name"`
	NetBalance *Money `json:"net_balance"` // Positive = owed money, negative = owes money
	TotalPaid  *Money `json:"total_paid"`
	TotalOwed  *Money `json:"total_owed"`
}

type Transfer struct {
	FromMemberId string `json:"from_member_id"`
	ToMemberId   string `json:"to_member_id"`
	Amount       *Money `json:"amount"`
}

type GetGroupBalancesRequest struct {
	GroupId string `json:"group_id"`
}

type GetGroupBalancesResponse struct {
	MemberBalances []*MemberBalance `json:"member_balances"`
	Transfers      []*Transfer      `json:"transfers"`
}

type Settlement struct {
	Id           string `json:"id"`
	GroupId      string `json:"group_id"`
	FromMemberId string `json:"from_member_id"`
	ToMemberId   string `json:"to_member_id"`
	Amount       *Money `json:"amount"`
	Note         string `json:"note,omitempty"`
	CreatedAt    int64  `json:"created_at"`
}

type RecordSettlementRequest struct {
	GroupId      string `json:"group_id"`
	FromMemberId string `json:"from_member_id"`
	ToMemberId   string `json:"to_member_id"`
	// Amount is a decimal string with at most two places, e.g. "12.50".
	Amount string `json:"amount"`
	Note   string `json:"note,omitempty"`
}

type RecordSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type ListSettlementsRequest struct {
	GroupId string `json:"group_id"`
}

type ListSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type DeleteSettlementRequest struct {
	SettlementId string `json:"settlement_id"`
}

type DeleteSettlementResponse struct{}

type Participant struct {
	MemberId string `json:"member_id"`
	// Weight is used by the "shares" policy.
	Weight int64 `json:"weight,omitempty"`
	// ExactAmount is a decimal string used by the "exact" policy.
	ExactAmount string `json:"exact_amount,omitempty"`
}

// ActivityInput describes an activity to preview or record.
type ActivityInput struct {
	GroupId string `json:"group_id"`
	Title   string `json:"title,omitempty"`
	// Amount is a decimal string with at most two places, e.g. "12.50".
	Amount       string         `json:"amount"`
	PayerId      string         `json:"payer_id"`
	Policy       string         `json:"policy,omitempty"` // "equal" (default), "shares" or "exact"
	Participants []*Participant `json:"participants"`
}

// Share is one member's balance change caused by an activity.
type Share struct {
	MemberId   string `json:"member_id"`
	MemberName string `json:"member_name"`
	Delta      *Money `json:"delta"`
}

type Activity struct {
	Id           string         `json:"id"`
	GroupId      string         `json:"group_id"`
	Title        string         `json:"title"`
	Amount       *Money         `json:"amount"`
	PayerId      string         `json:"payer_id"`
	Policy       string         `json:"policy"`
	Participants []*Participant `json:"participants"`
	CreatedAt    int64          `json:"created_at"`
}

type PreviewActivityRequest struct {
	Activity *ActivityInput `json:"activity"`
}

type PreviewActivityResponse struct {
	Shares []*Share `json:"shares"`
}

type CreateActivityRequest struct {
	Activity *ActivityInput `json:"activity"`
}

type CreateActivityResponse struct {
	Activity *Activity `json:"activity"`
	Shares   []*Share  `json:"shares"`
}

type GetActivityRequest struct {
	ActivityId string `json:"activity_id"`
}

type GetActivityResponse struct {
	Activity *Activity `json:"activity"`
	Shares   []*Share  `json:"shares"`
}

type ListActivitiesRequest struct {
	GroupId string `json:"group_id"`
}

type ListActivitiesResponse struct {
	Activities []*Activity `json:"activities"`
}

type DeleteActivityRequest struct {
	ActivityId string `json:"activity_id"`
}

type DeleteActivityResponse struct{}
