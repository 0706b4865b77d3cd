package gossip

import (
	"sort"
	"strconv"
	"strings"
)

// Secrets is the set of secrets known by a peer. As each peers secret is its
// own identity, the set contains peer identities.
//
// Secrets only ever grows, a secret is never removed once known.
type Secrets map[int]struct{}

// NewSecrets returns a set containing the given secrets.
func NewSecrets(secrets ...int) Secrets {
	s := make(Secrets, len(secrets))
	for _, secret := range secrets {
		s[secret] = struct{}{}
	}
	return s
}

// Union adds all secrets in other to s. Returns the number of secrets that
// were not already known.
func (s Secrets) Union(other Secrets) int {
	added := 0
	for secret := range other {
		if _, ok := s[secret]; !ok {
			s[secret] = struct{}{}
			added++
		}
	}
	return added
}

func (s Secrets) Contains(secret int) bool {
	_, ok := s[secret]
	return ok
}

func (s Secrets) Len() int {
	return len(s)
}

// Clone returns a copy of the set that shares no memory with s.
func (s Secrets) Clone() Secrets {
	clone := make(Secrets, len(s))
	for secret := range s {
		clone[secret] = struct{}{}
	}
	return clone
}

// Sorted returns the secrets in ascending order.
func (s Secrets) Sorted() []int {
	sorted := make([]int, 0, len(s))
	for secret := range s {
		sorted = append(sorted, secret)
	}
	sort.Ints(sorted)
	return sorted
}

// String formats the secrets in ascending order, such as '{0, 1, 2}'.
func (s Secrets) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, secret := range s.Sorted() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(secret))
	}
	b.WriteByte('}')
	return b.String()
}
