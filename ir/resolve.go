package ir

import "strings"

// resolve points every recorded reference at its target structure.
//
// A single %name is looked up among the siblings of the structure holding the
// reference, then among the siblings of each of its ancestors. Everything
// else, and any %name not found that way, matches the first structure in
// document order whose name is the last segment and whose named ancestors
// spell the preceding segments. For a chain starting with % those must be all
// of the named ancestors.
func resolve(st *store) []string {
	var unresolved []string
	for k := range st.refs {
		r := &st.refs[k]
		if r.path == "" {
			r.target = NullReference
			continue
		}
		r.target = st.dereference(r.origin, r.path)
		if r.target == NullReference {
			unresolved = append(unresolved, r.path)
		}
	}
	return unresolved
}

func (st *store) name(i int) string { return st.text[st.structures[i].name] }

func (st *store) dereference(origin int, path string) int {
	segs := SplitReference(path)
	leaf := segs[len(segs)-1]
	if len(segs) == 1 && leaf[0] == '%' {
		for at := origin; at != NoParent; at = st.structures[at].parent {
			if i := st.findSibling(st.structures[at].parent, leaf); i != NullReference {
				return i
			}
		}
	}
	prefix := segs[:len(segs)-1]
	for i := range st.structures {
		if st.name(i) == leaf && st.checkPrefix(st.structures[i].parent, prefix) {
			return i
		}
	}
	return NullReference
}

func (st *store) findSibling(parent int, name string) int {
	i := 0
	if parent != NoParent {
		c, ok := st.structures[parent].data.(customData)
		if !ok || c.firstChild == 0 {
			return NullReference
		}
		i = c.firstChild
	}
	for {
		if st.name(i) == name {
			return i
		}
		i = st.structures[i].next
		if i == 0 {
			return NullReference
		}
	}
}

func (st *store) checkPrefix(s int, prefix []string) bool {
	local := len(prefix) > 0 && prefix[0][0] == '%'
	for len(prefix) > 0 {
		if s == NoParent {
			return false
		}
		if n := st.name(s); n != "" {
			if n != prefix[len(prefix)-1] {
				return false
			}
			prefix = prefix[:len(prefix)-1]
		}
		s = st.structures[s].parent
	}
	if local {
		for ; s != NoParent; s = st.structures[s].parent {
			if st.name(s) != "" {
				return false
			}
		}
	}
	return true
}

// SplitReference splits a canonical reference path into its segments, each
// keeping its leading $ or %.
func SplitReference(path string) []string {
	var segs []string
	for len(path) > 0 {
		j := strings.IndexAny(path[1:], "$%")
		if j < 0 {
			segs = append(segs, path)
			break
		}
		segs = append(segs, path[:j+1])
		path = path[j+1:]
	}
	return segs
}
