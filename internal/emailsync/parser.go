package emailsync

import (
	"regexp"
	"strings"
)

// ParsedRequest is the leave request extracted from a single email.
type ParsedRequest struct {
	EmployeeEmail string
	StartDate     string
	EndDate       string
	LeaveType     string
	Reason        string
}

// Complete reports whether enough was extracted to record a leave.
func (p ParsedRequest) Complete() bool {
	return p.EmployeeEmail != "" && p.StartDate != "" && p.EndDate != ""
}

var (
	bodyEmailPattern = regexp.MustCompile(`(?i)(?:email|from):\s*([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
	reasonPattern    = regexp.MustCompile(`(?i)reason:\s*([^\n.]+)`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d{1,2}/\d{1,2}/\d{4})\s*(?:to|-|through)\s*(\d{1,2}/\d{1,2}/\d{4})`),
		regexp.MustCompile(`(?i)(\d{4}-\d{2}-\d{2})\s*(?:to|-|through)\s*(\d{4}-\d{2}-\d{2})`),
		regexp.MustCompile(`(?i)(?:from|starting)\s*(\d{1,2}/\d{1,2}/\d{4})\s*(?:to|until|through)\s*(\d{1,2}/\d{1,2}/\d{4})`),
	}

	unplannedKeywords = []string{"unplanned", "emergency", "sick", "urgent", "last minute"}
	plannedKeywords   = []string{"planned", "vacation", "scheduled"}
)

// ParseMessage extracts a leave request from an email's subject, body, and
// sender. Unplanned keywords win over planned ones; the type defaults to
// Planned when neither matches. A body-level "email:"/"from:" line, if
// present, overrides the sender address.
func ParseMessage(subject, body, senderEmail string) ParsedRequest {
	parsed := ParsedRequest{
		EmployeeEmail: strings.ToLower(strings.TrimSpace(senderEmail)),
		LeaveType:     "Planned",
	}

	if m := bodyEmailPattern.FindStringSubmatch(body); len(m) == 2 {
		parsed.EmployeeEmail = strings.ToLower(m[1])
	}

	combined := subject + " " + body
	for _, pattern := range datePatterns {
		if m := pattern.FindStringSubmatch(combined); len(m) == 3 {
			parsed.StartDate = NormalizeDate(m[1])
			parsed.EndDate = NormalizeDate(m[2])
			break
		}
	}

	lower := strings.ToLower(combined)
	if containsAny(lower, unplannedKeywords) {
		parsed.LeaveType = "Unplanned"
	} else if containsAny(lower, plannedKeywords) {
		parsed.LeaveType = "Planned"
	}

	if m := reasonPattern.FindStringSubmatch(combined); len(m) == 2 {
		parsed.Reason = strings.TrimSpace(m[1])
	}

	return parsed
}

// NormalizeDate converts M/D/YYYY into YYYY-MM-DD; ISO dates pass through.
func NormalizeDate(raw string) string {
	if !strings.Contains(raw, "/") {
		return raw
	}
	parts := strings.Split(raw, "/")
	if len(parts) != 3 {
		return raw
	}
	month, day, year := parts[0], parts[1], parts[2]
	if len(month) == 1 {
		month = "0" + month
	}
	if len(day) == 1 {
		day = "0" + day
	}
	return year + "-" + month + "-" + day
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
