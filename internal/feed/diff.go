package feed

import "sort"

// RowRef addresses one row in the sectioned view.
type RowRef struct {
	Section int
	Row     int
}

// RowMove records a row that survived a refresh but changed position.
type RowMove struct {
	From RowRef
	To   RowRef
}

// Diff is the structured change set emitted to subscribers after each
// refresh, so a list UI can apply an incremental update instead of reloading.
// Section indices refer to the previous snapshot for deletions and the new
// one for insertions; row references follow the same convention.
type Diff struct {
	InsertedSections []int
	DeletedSections  []int
	InsertedRows     []RowRef
	DeletedRows      []RowRef
	UpdatedRows      []RowRef
	MovedRows        []RowMove
}

// Empty reports whether the refresh changed nothing.
func (d Diff) Empty() bool {
	return len(d.InsertedSections) == 0 &&
		len(d.DeletedSections) == 0 &&
		len(d.InsertedRows) == 0 &&
		len(d.DeletedRows) == 0 &&
		len(d.UpdatedRows) == 0 &&
		len(d.MovedRows) == 0
}

// computeDiff compares two section snapshots. Rows are identified by tracker
// id and sections by category title. Rows belonging to a wholly inserted or
// deleted section are covered by the section entry and not reported again.
func computeDiff(prev, next []Section) Diff {
	var d Diff

	prevSections := make(map[string]int, len(prev))
	for i, s := range prev {
		prevSections[s.Title] = i
	}
	nextSections := make(map[string]int, len(next))
	for i, s := range next {
		nextSections[s.Title] = i
	}

	for i, s := range prev {
		if _, ok := nextSections[s.Title]; !ok {
			d.DeletedSections = append(d.DeletedSections, i)
		}
	}
	for i, s := range next {
		if _, ok := prevSections[s.Title]; !ok {
			d.InsertedSections = append(d.InsertedSections, i)
		}
	}

	type position struct {
		ref RowRef
		row Row
	}
	prevRows := make(map[string]position)
	for si, s := range prev {
		for ri, r := range s.Rows {
			prevRows[r.Tracker.ID] = position{RowRef{si, ri}, r}
		}
	}
	nextRows := make(map[string]position)
	for si, s := range next {
		for ri, r := range s.Rows {
			nextRows[r.Tracker.ID] = position{RowRef{si, ri}, r}
		}
	}

	prevIDs := make([]string, 0, len(prevRows))
	for id := range prevRows {
		prevIDs = append(prevIDs, id)
	}
	sort.Strings(prevIDs)

	for _, id := range prevIDs {
		pp := prevRows[id]
		if _, ok := nextRows[id]; ok {
			continue
		}
		if _, survives := nextSections[prev[pp.ref.Section].Title]; survives {
			d.DeletedRows = append(d.DeletedRows, pp.ref)
		}
	}
	ids := make([]string, 0, len(nextRows))
	for id := range nextRows {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		np := nextRows[id]
		pp, existed := prevRows[id]
		if !existed {
			if _, sectionExisted := prevSections[next[np.ref.Section].Title]; sectionExisted {
				d.InsertedRows = append(d.InsertedRows, np.ref)
			}
			continue
		}

		sameSection := prev[pp.ref.Section].Title == next[np.ref.Section].Title
		if !sameSection || pp.ref.Row != np.ref.Row {
			d.MovedRows = append(d.MovedRows, RowMove{From: pp.ref, To: np.ref})
			continue
		}
		if !pp.row.Equal(np.row) {
			d.UpdatedRows = append(d.UpdatedRows, np.ref)
		}
	}

	return d
}
