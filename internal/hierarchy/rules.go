package hierarchy

import "strings"

// RuleID names a rule of the messaging chain.
type RuleID string

const (
	RuleMemberNotFound   RuleID = "member_not_found"
	RuleAdmin            RuleID = "admin"
	RuleSenderHR         RuleID = "sender_hr"
	RuleRecipientHR      RuleID = "recipient_hr"
	RuleDirectManager    RuleID = "direct_manager"
	RuleSameDepartment   RuleID = "same_department"
	RuleDirectReport     RuleID = "direct_report"
	RuleManagerToManager RuleID = "manager_to_manager"
	RuleDefaultDeny      RuleID = "default_deny"
)

// Decision is the outcome of a messaging check and the rule that produced it.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Rule    RuleID `json:"rule"`
	Reason  string `json:"reason"`
}

// RuleInfo describes one entry of the chain for audit listings.
type RuleInfo struct {
	Order   int    `json:"order"`
	ID      RuleID `json:"id"`
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}

type rule struct {
	id      RuleID
	allowed bool
	reason  string
	match   func(sender, recipient *Party) bool
}

// chain is evaluated top to bottom; the first matching rule decides.
// The last rule always matches.
var chain = []rule{
	{RuleMemberNotFound, false, "Employee not found", func(s, r *Party) bool {
		return s == nil || r == nil
	}},
	{RuleAdmin, true, "Admin access", func(s, _ *Party) bool {
		return isAdminRole(s.Role)
	}},
	{RuleSenderHR, true, "HR access", func(s, _ *Party) bool {
		return isHRDepartment(s.Department)
	}},
	{RuleRecipientHR, true, "HR always allowed", func(_, r *Party) bool {
		return isHRDepartment(r.Department)
	}},
	{RuleDirectManager, true, "Direct manager", func(s, r *Party) bool {
		return s.ManagerID != "" && s.ManagerID == r.ID
	}},
	{RuleSameDepartment, true, "Same department", func(s, r *Party) bool {
		return s.Department == r.Department
	}},
	{RuleDirectReport, true, "Direct report", func(s, r *Party) bool {
		return s.Manages(r.ID)
	}},
	{RuleManagerToManager, true, "Manager to manager", func(s, r *Party) bool {
		return s.IsManager() && r.IsManager()
	}},
	{RuleDefaultDeny, false, "Different department (not manager/HR)", func(_, _ *Party) bool {
		return true
	}},
}

// Evaluate runs the messaging rule chain for sender and recipient.
// A nil party stands for a member that could not be resolved.
func Evaluate(sender, recipient *Party) Decision {
	last := len(chain) - 1
	for _, r := range chain[:last] {
		if r.match(sender, recipient) {
			return r.decision()
		}
	}
	// default deny
	return chain[last].decision()
}

func (r rule) decision() Decision {
	return Decision{Allowed: r.allowed, Rule: r.id, Reason: r.reason}
}

// Rules lists the chain in evaluation order.
func Rules() []RuleInfo {
	out := make([]RuleInfo, len(chain))
	for i, r := range chain {
		out[i] = RuleInfo{Order: i + 1, ID: r.id, Allowed: r.allowed, Reason: r.reason}
	}
	return out
}

func isAdminRole(role string) bool {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "admin", "administrator":
		return true
	}
	return false
}

func isHRDepartment(department string) bool {
	switch strings.ToLower(strings.TrimSpace(department)) {
	case "hr", "human resources":
		return true
	}
	return false
}
