package dictionary

// BuildCount reports how many tables the node has built.
func (n *Node) BuildCount() int64 { return n.builds.Load() }

// MergeCacheLen reports the number of memoized merged views.
func MergeCacheLen(t *Translator) int {
	if t.merged == nil {
		return 0
	}
	return t.merged.len()
}
