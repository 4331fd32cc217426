package store

// apply is the reference "apply one change event to a list" model shared by
// every collection. row is nil for deletes.
func apply[T any](list []T, kind ChangeKind, id string, row *T, idOf func(T) string) []T {
	switch kind {
	case ChangeInsert:
		// Prepend unconditionally. A row whose id is already present is NOT
		// deduplicated; the duplicate is visible until the next full reload.
		return append([]T{*row}, list...)
	case ChangeUpdate:
		for i := range list {
			if idOf(list[i]) == id {
				list[i] = *row
				break
			}
		}
		return list
	case ChangeDelete:
		for i := range list {
			if idOf(list[i]) == id {
				return append(list[:i:i], list[i+1:]...)
			}
		}
		return list
	default:
		return list
	}
}
