package analysis

import "github.com/corona10/goimagehash"

// DedupeSelection drops selection entries whose thumbnail is perceptually
// indistinguishable from the previously kept entry (Hamming distance of the
// perception hashes <= threshold). Entries without a thumbnail, or whose
// hash cannot be computed, are always kept. Order is preserved.
func DedupeSelection(frames []FrameData, threshold int) []FrameData {
	kept := make([]FrameData, 0, len(frames))
	var lastHash *goimagehash.ImageHash

	for _, fd := range frames {
		if fd.Thumbnail == nil {
			kept = append(kept, fd)
			continue
		}
		hash, err := goimagehash.PerceptionHash(fd.Thumbnail)
		if err != nil {
			kept = append(kept, fd)
			continue
		}
		if lastHash != nil {
			if distance, err := lastHash.Distance(hash); err == nil && distance <= threshold {
				continue
			}
		}
		kept = append(kept, fd)
		lastHash = hash
	}
	return kept
}
