package aggregate

import (
	"strings"
	"worklens/src-cli/utils"
)

var personalEmailDomains = map[string]struct{}{
	"gmail.com":   {},
	"outlook.com": {},
	"hotmail.com": {},
	"yahoo.com":   {},
}

// OrganizationFromEmail maps an email to an organization label: the internal
// domain becomes "Internal", common webmail providers "Personal Email", and
// anything else takes its domain's first label, title-cased.
func OrganizationFromEmail(email string, internalDomain string) string {
	if email == "" || !strings.Contains(email, "@") {
		return "Unknown"
	}
	domain := strings.ToLower(strings.SplitN(email, "@", 2)[1])

	if internalDomain != "" && strings.Contains(domain, internalDomain) {
		return "Internal"
	}
	if _, ok := personalEmailDomains[domain]; ok {
		return "Personal Email"
	}
	return utils.TitleCase(strings.SplitN(domain, ".", 2)[0])
}
