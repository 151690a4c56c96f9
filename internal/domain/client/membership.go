package client

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/eyrie/backend/internal/domain/shared"
)

// MembershipPrefix is the fixed prefix of every membership number
const MembershipPrefix = "EA-"

var membershipPattern = regexp.MustCompile(`^EA-(\d+)$`)

// ParseMembershipNumber extracts the numeric suffix from a membership
// number such as "EA-12". Returns a domain error for any other shape.
func ParseMembershipNumber(membership string) (int, error) {
	m := membershipPattern.FindStringSubmatch(membership)
	if m == nil {
		return 0, shared.NewDomainError("INVALID_MEMBERSHIP", "Membership number must match EA-<number>")
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, shared.NewDomainError("INVALID_MEMBERSHIP", "Membership number must match EA-<number>")
	}
	return n, nil
}

// FormatMembershipNumber renders a numeric suffix as a membership number
func FormatMembershipNumber(n int) string {
	return fmt.Sprintf("%s%d", MembershipPrefix, n)
}

// NextMembershipNumber assigns the next membership number given all
// existing ones: the highest numeric suffix plus one, or EA-1 when no
// client exists yet. Malformed entries are ignored rather than rejected,
// matching how historical records are treated.
func NextMembershipNumber(existing []string) string {
	maxN := 0
	for _, e := range existing {
		n, err := ParseMembershipNumber(e)
		if err != nil {
			continue
		}
		if n > maxN {
			maxN = n
		}
	}
	return FormatMembershipNumber(maxN + 1)
}
