package charts

import (
	"fmt"
	"strings"
)

// Kind tags the concrete variant of a [Chart].
type Kind string

const (
	KindProductivity Kind = "productivity"
	KindBar          Kind = "bar"
	KindProgress     Kind = "progress"
)

// Kinds returns every supported chart kind.
func Kinds() []Kind {
	return []Kind{KindProductivity, KindBar, KindProgress}
}

// ParseKind converts a type tag into a [Kind].
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindProductivity, KindBar, KindProgress:
		return k, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Animated reports whether charts of this kind run an entrance animation.
func (k Kind) Animated() bool {
	return k == KindProductivity || k == KindProgress
}

func (k Kind) String() string {
	return string(k)
}
