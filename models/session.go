package models

import "fmt"

type SessionStatus int

const (
	SessionStatusOpen SessionStatus = iota
	SessionStatusAwaitingPayment
	SessionStatusClosed
)

var sessionStatusNames = map[SessionStatus]string{
	SessionStatusOpen:            "OPEN",
	SessionStatusAwaitingPayment: "AWAITING_PAYMENT",
	SessionStatusClosed:          "CLOSED",
}

func (s SessionStatus) String() string {
	if name, ok := sessionStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SessionStatus(%d)", int(s))
}

type AssistanceRequestStatus int

const (
	AssistanceOpen AssistanceRequestStatus = iota
	AssistanceHandling
	AssistanceClosed
	AssistanceCancelled
)

var assistanceStatusNames = map[AssistanceRequestStatus]string{
	AssistanceOpen:      "OPEN",
	AssistanceHandling:  "HANDLING",
	AssistanceClosed:    "CLOSED",
	AssistanceCancelled: "CANCELLED",
}

func (s AssistanceRequestStatus) String() string {
	if name, ok := assistanceStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("AssistanceRequestStatus(%d)", int(s))
}

// assistanceStaffTransitions covers the staff-side lifecycle: staff toggle a
// request between OPEN and HANDLING and close it from HANDLING. CANCELLED is
// tablet-side only and never offered to staff.
var assistanceStaffTransitions = map[AssistanceRequestStatus][]AssistanceRequestStatus{
	AssistanceOpen:     {AssistanceHandling},
	AssistanceHandling: {AssistanceOpen, AssistanceClosed},
}

// NextStaffStatuses returns the statuses staff may move a request to.
func (s AssistanceRequestStatus) NextStaffStatuses() []AssistanceRequestStatus {
	next := assistanceStaffTransitions[s]
	out := make([]AssistanceRequestStatus, len(next))
	copy(out, next)
	return out
}

// CanStaffTransitionTo reports whether staff may move from s to target.
func (s AssistanceRequestStatus) CanStaffTransitionTo(target AssistanceRequestStatus) bool {
	for _, n := range assistanceStaffTransitions[s] {
		if n == target {
			return true
		}
	}
	return false
}

type AssistanceRequest struct {
	Status    AssistanceRequestStatus `json:"status"`
	StartTime string                  `json:"start_time"`
	EndTime   *string                 `json:"end_time,omitempty"`
	Notes     string                  `json:"notes,omitempty"`
}

// AssistanceRequests holds at most one current request; resolved requests
// move into Handled and become immutable.
type AssistanceRequests struct {
	Current *AssistanceRequest  `json:"current"`
	Handled []AssistanceRequest `json:"handled"`
}

// NewestHandled returns the most recently started handled request, or nil.
func (a AssistanceRequests) NewestHandled() *AssistanceRequest {
	var newest *AssistanceRequest
	for i := range a.Handled {
		if newest == nil || a.Handled[i].StartTime > newest.StartTime {
			newest = &a.Handled[i]
		}
	}
	return newest
}

// CanReopen reports whether the handled request at the given start time may
// be reopened: it must be the newest entry in the history and there must be
// no current request.
func (a AssistanceRequests) CanReopen(startTime string) bool {
	if a.Current != nil {
		return false
	}
	newest := a.NewestHandled()
	return newest != nil && newest.StartTime == startTime
}

type Session struct {
	ID                 string             `json:"id"`
	Status             SessionStatus      `json:"status"`
	Orders             []Order            `json:"orders"`
	StartTime          string             `json:"session_start_time"`
	EndTime            *string            `json:"session_end_time,omitempty"`
	AssistanceRequests AssistanceRequests `json:"assistance_requests"`
}
