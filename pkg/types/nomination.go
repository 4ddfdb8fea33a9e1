package types

import (
	"fmt"
	"strings"
	"time"
)

type NominationStatus string

const (
	NominationStatusPending  NominationStatus = "pending"
	NominationStatusApproved NominationStatus = "approved"
	NominationStatusRejected NominationStatus = "rejected"
)

var AllNominationStatuses = []NominationStatus{
	NominationStatusPending,
	NominationStatusApproved,
	NominationStatusRejected,
}

func (s NominationStatus) Valid() bool {
	switch s {
	case NominationStatusPending, NominationStatusApproved, NominationStatusRejected:
		return true
	}
	return false
}

func ParseNominationStatus(v string) (NominationStatus, error) {
	s := NominationStatus(strings.ToLower(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, v)
	}
	return s, nil
}

type Nomination struct {
	ID                string           `db:"id" json:"id"`
	EntrepreneurName  string           `db:"entrepreneur_name" json:"entrepreneur_name"`
	EntrepreneurPhone string           `db:"entrepreneur_phone" json:"entrepreneur_phone"`
	BusinessName      string           `db:"business_name" json:"business_name"`
	BusinessLocation  string           `db:"business_location" json:"business_location"`
	BusinessType      string           `db:"business_type" json:"business_type"`
	NominatorName     string           `db:"nominator_name" json:"nominator_name"`
	NominatorPhone    string           `db:"nominator_phone" json:"nominator_phone"`
	Status            NominationStatus `db:"status" json:"status"`
	Notes             *string          `db:"notes" json:"notes,omitempty"`
	CreatedAt         time.Time        `db:"created_at" json:"created_at"`
}

// NominationForm is the public intake payload. The same seven fields are
// forwarded to the admin notification.
type NominationForm struct {
	EntrepreneurName  string `form:"entrepreneur_name" json:"entrepreneur_name"`
	EntrepreneurPhone string `form:"entrepreneur_phone" json:"entrepreneur_phone"`
	BusinessName      string `form:"business_name" json:"business_name"`
	BusinessLocation  string `form:"business_location" json:"business_location"`
	BusinessType      string `form:"business_type" json:"business_type"`
	NominatorName     string `form:"nominator_name" json:"nominator_name"`
	NominatorPhone    string `form:"nominator_phone" json:"nominator_phone"`
}

func (f *NominationForm) Trim() {
	f.EntrepreneurName = strings.TrimSpace(f.EntrepreneurName)
	f.EntrepreneurPhone = strings.TrimSpace(f.EntrepreneurPhone)
	f.BusinessName = strings.TrimSpace(f.BusinessName)
	f.BusinessLocation = strings.TrimSpace(f.BusinessLocation)
	f.BusinessType = strings.TrimSpace(f.BusinessType)
	f.NominatorName = strings.TrimSpace(f.NominatorName)
	f.NominatorPhone = strings.TrimSpace(f.NominatorPhone)
}

type NominationStatusCounts struct {
	Total    int
	Pending  int
	Approved int
	Rejected int
}
