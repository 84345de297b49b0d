package display

// ReservedDescriptors is the headroom kept for descriptors other than inputs:
// standard streams, the output and its lock, the run log.
const ReservedDescriptors = 16

// CheckInputCount decides whether holding count inputs open deserves a warning.
// It warns when count exceeds threshold (threshold <= 0 disables that check),
// or when count plus ReservedDescriptors reaches a known limit.
func CheckInputCount(count, threshold int, limit uint64, haveLimit bool) (Warning, bool) {
	nearLimit := haveLimit && uint64(count)+ReservedDescriptors >= limit
	if !nearLimit && (threshold <= 0 || count <= threshold) {
		return Warning{}, false
	}
	if !haveLimit {
		limit = 0
	}
	return WarnManyInputs(count, limit), true
}
