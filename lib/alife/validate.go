package alife

import (
	"github.com/xray-forge/xrf-go/lib/containers"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// CheckStoryIDsUnique enforces that every object with a non-zero story id
// has one that's unique across the whole object list.
func CheckStoryIDsUnique(objects []Object) error {
	seen := containers.NewSet[uint32]()
	dupes := containers.NewSet[uint32]()
	for _, obj := range objects {
		h := obj.Header()
		if !h.HasStoryID() {
			continue
		}
		if seen.Has(h.StoryID) {
			dupes.Insert(h.StoryID)
		}
		seen.Insert(h.StoryID)
	}
	if len(dupes) > 0 {
		return xrerr.New(xrerr.Invalid, "duplicate story_id values: %v", dupes.Sorted())
	}
	return nil
}
