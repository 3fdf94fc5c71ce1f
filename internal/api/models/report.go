package models

// ReportReason is why a user is being reported.
type ReportReason string

const (
	ReportReasonFakeProfile   ReportReason = "fake_profile"
	ReportReasonHarassment    ReportReason = "harassment"
	ReportReasonInappropriate ReportReason = "inappropriate"
	ReportReasonSpam          ReportReason = "spam"
	ReportReasonSafety        ReportReason = "safety"
	ReportReasonOther         ReportReason = "other"
)

// ReportCreateRequest is the request body for reporting a user.
type ReportCreateRequest struct {
	ReportedUserID string       `json:"reported_user_id"`
	Reason         ReportReason `json:"reason"`
	Description    *string      `json:"description,omitempty"`
}

// Report is a filed report.
type Report struct {
	ID             string       `json:"id"`
	ReporterID     string       `json:"reporter_id"`
	ReportedUserID string       `json:"reported_user_id"`
	Reason         ReportReason `json:"reason"`
	Description    *string      `json:"description,omitempty"`
	Status         string       `json:"status"`
	CreatedAt      Timestamp    `json:"created_at"`
}
