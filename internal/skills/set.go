package skills

import "sort"

// SkillID is the persisted identifier of a canonical skill.
type SkillID int64

// Skill is a canonical skill as stored by the persistence layer.
type Skill struct {
	ID   SkillID `json:"id"`
	Name string  `json:"name"`
}

// Set is an unordered set of skill IDs.
type Set map[SkillID]struct{}

// NewSet builds a set from ids; duplicates collapse.
func NewSet(ids ...SkillID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Len returns the number of IDs in the set. A nil set is empty.
func (s Set) Len() int {
	return len(s)
}

// Contains reports whether id is in the set.
func (s Set) Contains(id SkillID) bool {
	_, ok := s[id]
	return ok
}

// Intersect returns the IDs present in both sets. It walks the smaller set.
func (s Set) Intersect(other Set) Set {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(Set)
	for id := range small {
		if large.Contains(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Difference returns the IDs in s that are not in other.
func (s Set) Difference(other Set) Set {
	out := make(Set)
	for id := range s {
		if !other.Contains(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Sorted returns the IDs in ascending order.
func (s Set) Sorted() []SkillID {
	ids := make([]SkillID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Names maps skill IDs to display names for one candidate or job.
type Names map[SkillID]string

// NamesOf builds a Names map from a list of skills.
func NamesOf(list []Skill) Names {
	n := make(Names, len(list))
	for _, sk := range list {
		n[sk.ID] = sk.Name
	}
	return n
}

// IDs returns the key set.
func (n Names) IDs() Set {
	s := make(Set, len(n))
	for id := range n {
		s[id] = struct{}{}
	}
	return s
}

// Lookup returns the names of the given IDs that are known to n, sorted.
func (n Names) Lookup(ids Set) []string {
	out := make([]string, 0, len(ids))
	for id := range ids {
		if name, ok := n[id]; ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
