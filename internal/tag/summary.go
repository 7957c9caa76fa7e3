package tag

import (
	"fmt"
	"sort"
)

// Range represents one contiguous run of reserved tags for display
type Range struct {
	// Label is the display string: a single tag, or "{start} - {end}"
	Label string `json:"label"`
	// Count is the number of tags in the range
	Count int `json:"count"`
	// StartTag and EndTag bound the range (equal for single-tag ranges)
	StartTag string `json:"start_tag"`
	EndTag   string `json:"end_tag"`
}

// Summarize compresses a user's reserved tag strings into contiguous-id
// ranges, ascending by start id. It is a pure presentation aid over the
// ledger's reserved-tag listing and never mutates state. Duplicate tags
// collapse; any undecodable tag is an error.
func Summarize(tags []string) ([]Range, error) {
	if len(tags) == 0 {
		return []Range{}, nil
	}

	ids := make([]int64, 0, len(tags))
	for _, t := range tags {
		id, err := Parse(t)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize reservations: %w", err)
		}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ranges := make([]Range, 0, len(ids))
	start, end := ids[0], ids[0]
	for _, id := range ids[1:] {
		switch {
		case id == end || id == end+1:
			end = id
		default:
			r, err := newRange(start, end)
			if err != nil {
				return nil, err
			}
			ranges = append(ranges, r)
			start, end = id, id
		}
	}

	r, err := newRange(start, end)
	if err != nil {
		return nil, err
	}

	return append(ranges, r), nil
}

func newRange(start, end int64) (Range, error) {
	startTag, err := Render(start)
	if err != nil {
		return Range{}, err
	}
	endTag, err := Render(end)
	if err != nil {
		return Range{}, err
	}

	label := startTag
	if start != end {
		label = fmt.Sprintf("%s - %s", startTag, endTag)
	}

	return Range{
		Label:    label,
		Count:    int(end - start + 1),
		StartTag: startTag,
		EndTag:   endTag,
	}, nil
}
