package activity

// ResolveDeletion computes the exact set of record ids a delete removes,
// in collection order. Scope "single" targets just the named record;
// scope "all" resolves the record's series key and removes the template
// together with every member pointing at it. An id that doesn't exist in
// the collection resolves to nothing: deleting it is a no-op, not an
// error. Transient occurrences have no backing record and are skipped.
func ResolveDeletion(collection []Activity, id string, scope DeleteScope) []string {
	var target *Activity
	for i := range collection {
		if collection[i].ID == id {
			target = &collection[i]
			break
		}
	}
	if target == nil {
		return nil
	}

	if scope != DeleteAll {
		if target.Transient {
			return nil
		}
		return []string{target.ID}
	}

	groupKey := target.SeriesKey()
	var ids []string
	for i := range collection {
		act := &collection[i]
		if act.Transient {
			continue
		}
		if act.ID == groupKey || (act.Recurring != nil && act.Recurring.OriginalID == groupKey) {
			ids = append(ids, act.ID)
		}
	}
	return ids
}
