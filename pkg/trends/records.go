package trends

// Record is a flat JSON-serializable view of one series row: a "date" field
// in ISO-8601 form plus one integer field per keyword. The partial marker is
// metadata, not a data column, and is dropped here.
type Record map[string]interface{}

// ToRecords flattens a series into records ready for JSON encoding. It is a
// pure function: the same result always yields the same records, and an empty
// series yields an empty (non-nil) slice.
func ToRecords(result SeriesResult) []Record {
	records := make([]Record, 0, len(result))

	for _, row := range result {
		rec := make(Record, len(row.Values)+1)
		rec["date"] = row.Date.Format("2006-01-02")
		for keyword, value := range row.Values {
			rec[keyword] = value
		}
		records = append(records, rec)
	}

	return records
}
