package weave

// SeenSet records which line contents have already been written.
// Sets only grow; nothing is ever removed.
type SeenSet interface {
	// Insert adds line and reports whether it was absent before.
	Insert(line []byte) bool
	// Len returns the number of distinct entries.
	Len() int
	// ApproxBytes estimates the memory held by entries.
	ApproxBytes() int64
}

// HashSet is a SeenSet that keeps only line hashes.
// Distinct lines with equal hashes are treated as one.
type HashSet struct {
	hash func([]byte) uint64
	keys map[uint64]struct{}
}

// NewHashSet creates a HashSet with room for reserve entries.
func NewHashSet(reserve int) *HashSet {
	return newHashSet(reserve, HashLine)
}

func newHashSet(reserve int, hash func([]byte) uint64) *HashSet {
	if reserve < 0 {
		reserve = 0
	}
	return &HashSet{
		hash: hash,
		keys: make(map[uint64]struct{}, reserve),
	}
}

// Insert implements SeenSet.
func (s *HashSet) Insert(line []byte) bool {
	h := s.hash(line)
	if _, ok := s.keys[h]; ok {
		return false
	}
	s.keys[h] = struct{}{}
	return true
}

// Len implements SeenSet.
func (s *HashSet) Len() int {
	return len(s.keys)
}

// ApproxBytes implements SeenSet.
func (s *HashSet) ApproxBytes() int64 {
	return int64(len(s.keys)) * 8
}

// VerifiedSet is a SeenSet that confirms hash hits against stored content.
// Lines sharing a hash are chained in an overflow bucket.
type VerifiedSet struct {
	hash     func([]byte) uint64
	primary  map[uint64]string
	overflow map[uint64][]string
	count    int
	content  int64
}

// NewVerifiedSet creates a VerifiedSet with room for reserve entries.
func NewVerifiedSet(reserve int) *VerifiedSet {
	return newVerifiedSet(reserve, HashLine)
}

func newVerifiedSet(reserve int, hash func([]byte) uint64) *VerifiedSet {
	if reserve < 0 {
		reserve = 0
	}
	return &VerifiedSet{
		hash:     hash,
		primary:  make(map[uint64]string, reserve),
		overflow: make(map[uint64][]string),
	}
}

// Insert implements SeenSet.
func (s *VerifiedSet) Insert(line []byte) bool {
	h := s.hash(line)

	first, ok := s.primary[h]
	if !ok {
		s.primary[h] = string(line)
		s.add(len(line))
		return true
	}
	if first == string(line) {
		return false
	}

	for _, other := range s.overflow[h] {
		if other == string(line) {
			return false
		}
	}
	s.overflow[h] = append(s.overflow[h], string(line))
	s.add(len(line))
	return true
}

func (s *VerifiedSet) add(n int) {
	s.count++
	s.content += int64(n)
}

// Len implements SeenSet.
func (s *VerifiedSet) Len() int {
	return s.count
}

// Collisions returns how many stored lines share a hash with an earlier, different line.
func (s *VerifiedSet) Collisions() int {
	n := 0
	for _, chain := range s.overflow {
		n += len(chain)
	}
	return n
}

// ApproxBytes implements SeenSet.
// Counts the key, the string header and the content of each entry.
func (s *VerifiedSet) ApproxBytes() int64 {
	return int64(s.count)*(8+16) + s.content
}
