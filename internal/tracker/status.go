package tracker

import (
	"fmt"
	"strings"
)

// Status is an application's position in the hiring pipeline.
type Status string

const (
	StatusApplied            Status = "Applied"
	StatusPhoneScreen        Status = "Phone Screen"
	StatusTechnicalInterview Status = "Technical Interview"
	StatusFinalInterview     Status = "Final Interview"
	StatusOffer              Status = "Offer"
	StatusAccepted           Status = "Accepted"
	StatusRejected           Status = "Rejected"
	StatusWithdrawn          Status = "Withdrawn"
)

// Terminal reports whether the application is closed. Terminal
// applications never surface in follow-up checks.
func (s Status) Terminal() bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

var allStatuses = []Status{
	StatusApplied,
	StatusPhoneScreen,
	StatusTechnicalInterview,
	StatusFinalInterview,
	StatusOffer,
	StatusAccepted,
	StatusRejected,
	StatusWithdrawn,
}

// ParseStatus normalizes free-form input ("phone_screen", "Phone Screen",
// "phonescreen") to a known Status.
func ParseStatus(raw string) (Status, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "_", " ")
	key = strings.ReplaceAll(key, "-", " ")
	key = strings.Join(strings.Fields(key), " ")
	for _, s := range allStatuses {
		if key == strings.ToLower(string(s)) {
			return s, nil
		}
	}
	// accept the squashed form too
	squashed := strings.ReplaceAll(key, " ", "")
	for _, s := range allStatuses {
		if squashed == strings.ReplaceAll(strings.ToLower(string(s)), " ", "") {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", raw)
}
