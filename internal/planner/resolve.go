package planner

import "strings"

// ResolveTag finds the unique tag naming a version. Upstream projects tag
// releases as v2.69, release-2.69 or autoconf-2.69 depending on era;
// matching is case-insensitive and anchored to the whole tag name.
// Anything other than exactly one match is a TagNotFoundError.
func ResolveTag(tags []string, pkg, version string) (string, error) {
	candidates := []string{
		"v" + version,
		"release-" + version,
		pkg + "-" + version,
	}

	var matches []string
	for _, tag := range tags {
		for _, want := range candidates {
			if strings.EqualFold(tag, want) {
				matches = append(matches, tag)
				break
			}
		}
	}

	if len(matches) != 1 {
		return "", &TagNotFoundError{Package: pkg, Version: version, Matches: matches}
	}
	return matches[0], nil
}
