// Package basket holds the per-session shopping basket: an ordered set of
// item identifiers with no lifetime beyond the visitor's session.
package basket

// Add appends id unless already present. Existing entries keep their order.
func Add(ids []uint64, id uint64) []uint64 {
	if Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

// Remove drops id if present; removing an absent id is a no-op.
func Remove(ids []uint64, id uint64) []uint64 {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

func Contains(ids []uint64, id uint64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
