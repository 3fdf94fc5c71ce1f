package metro

// MinStationDistance returns the smallest number of stops between a and b on
// any line the two stations share. Transfers between lines are not considered:
// stations with no common line, or unknown names, are Unreachable.
func (i *Index) MinStationDistance(a, b string) int {
	entriesA, okA := i.entries[a]
	entriesB, okB := i.entries[b]
	if !okA || !okB {
		return Unreachable
	}

	best := Unreachable
	for _, ea := range entriesA {
		for _, eb := range entriesB {
			if ea.Line != eb.Line {
				continue
			}
			if d := abs(ea.SequenceIndex - eb.SequenceIndex); d < best {
				best = d
			}
		}
	}
	return best
}

// IsWithinStations reports whether a and b are at most maxDistance stops apart
// on a shared line.
func (i *Index) IsWithinStations(a, b string, maxDistance int) bool {
	return i.MinStationDistance(a, b) <= maxDistance
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
