package version

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

type semver struct {
	parts [3]int
	// pre is the pre-release suffix, e.g. "rc1" in 1.0.0-rc1.
	pre string
}

func parse(s string) (semver, error) {
	var v semver

	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	s, v.pre, _ = strings.Cut(s, "-")
	s, _, _ = strings.Cut(s, "+")

	fields := strings.Split(s, ".")
	if len(fields) == 0 || len(fields) > 3 {
		return v, fmt.Errorf("invalid version %q", s)
	}

	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return v, fmt.Errorf("invalid version %q", s)
		}
		v.parts[i] = n
	}

	return v, nil
}

// Compare compares two versions of the form [v]MAJOR[.MINOR[.PATCH]][-PRE].
// It returns 1 if a is newer, -1 if b is newer and 0 if they are equal.
// A pre-release is older than the release it precedes.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for i := range av.parts {
		if c := cmp.Compare(av.parts[i], bv.parts[i]); c != 0 {
			return c, nil
		}
	}

	switch {
	case av.pre == bv.pre:
		return 0, nil
	case av.pre == "":
		return 1, nil
	case bv.pre == "":
		return -1, nil
	default:
		return strings.Compare(av.pre, bv.pre), nil
	}
}
