package git

import (
	"fmt"
	"regexp"
)

var (
	httpsOwnerPattern = regexp.MustCompile(`^(?:https://)?github\.com/([^/]+)/`)
	sshOwnerPattern   = regexp.MustCompile(`^git@github\.com:([^/]+)/`)
)

// ExtractGitHubOwner returns the account that owns a GitHub remote URL, for
// https (with or without scheme) and scp-style ssh URLs.
func ExtractGitHubOwner(url string) (string, error) {
	if m := httpsOwnerPattern.FindStringSubmatch(url); m != nil {
		return m[1], nil
	}
	if m := sshOwnerPattern.FindStringSubmatch(url); m != nil {
		return m[1], nil
	}
	return "", fmt.Errorf("could not parse GitHub owner from '%s' remote URL: %s", OriginRemote, url)
}
