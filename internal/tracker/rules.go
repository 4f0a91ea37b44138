package tracker

// Rule says how long a status may sit without contact before a follow-up
// is due, and which action the follow-up should take.
type Rule struct {
	Days   int    `json:"days" yaml:"days"`
	Action string `json:"action" yaml:"action"`
}

// Rules maps each non-terminal status to its follow-up rule. Built once at
// startup and treated as read-only afterwards.
type Rules map[Status]Rule

// DefaultRules is the stock follow-up cadence.
func DefaultRules() Rules {
	return Rules{
		StatusApplied:            {Days: 7, Action: "Send initial follow-up"},
		StatusPhoneScreen:        {Days: 3, Action: "Follow up on next steps"},
		StatusTechnicalInterview: {Days: 5, Action: "Request feedback"},
		StatusFinalInterview:     {Days: 3, Action: "Check on decision timeline"},
		StatusOffer:              {Days: 2, Action: "Respond to offer"},
	}
}
