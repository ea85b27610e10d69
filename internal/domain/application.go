package domain

import "time"

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationApproved  ApplicationStatus = "approved"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationCompleted ApplicationStatus = "completed"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected, ApplicationCompleted:
		return true
	}
	return false
}

// MissionApplication is a volunteer's request to take one slot of a mission.
//
//	pending --approve--> approved --complete--> completed
//	pending --reject---> rejected
type MissionApplication struct {
	ID          uint              `json:"id"`
	MissionID   uint              `json:"mission_id"`
	Mission     *Mission          `json:"mission,omitempty"`
	VolunteerID uint              `json:"volunteer_id"`
	Volunteer   *Volunteer        `json:"volunteer,omitempty"`
	Status      ApplicationStatus `json:"status"`
	AppliedAt   time.Time         `json:"applied_at"`
	ApprovedAt  *time.Time        `json:"approved_at,omitempty"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Rating      *int              `json:"rating,omitempty"`
	ReviewNote  string            `json:"review_note,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (a *MissionApplication) Approve(now time.Time) error {
	if a.Status != ApplicationPending {
		return InvalidState("only pending applications can be approved, current status is %s", a.Status)
	}
	a.Status = ApplicationApproved
	a.ApprovedAt = &now
	return nil
}

func (a *MissionApplication) Reject(note *string) error {
	if a.Status != ApplicationPending {
		return InvalidState("only pending applications can be rejected, current status is %s", a.Status)
	}
	a.Status = ApplicationRejected
	if note != nil {
		a.ReviewNote = *note
	}
	return nil
}

func (a *MissionApplication) Complete(now time.Time, rating *int, note *string) error {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return InvalidArgument("rating must be between 1 and 5")
	}
	if a.Status != ApplicationApproved {
		return InvalidState("only approved applications can be completed, current status is %s", a.Status)
	}
	a.Status = ApplicationCompleted
	a.CompletedAt = &now
	if rating != nil {
		a.Rating = rating
	}
	if note != nil {
		a.ReviewNote = *note
	}
	return nil
}

// HoldsReleasableSlot reports whether deleting the application gives its slot back to the mission.
// Completed applications keep the slot filled.
func (a MissionApplication) HoldsReleasableSlot() bool {
	return a.Status == ApplicationApproved
}
