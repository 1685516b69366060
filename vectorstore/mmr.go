package vectorstore

import "math"

// Select greedily picks limit records maximizing a linear combination of
// relevance (the record's Score against the query) and dissimilarity to the
// records already selected.
func Select(records []Record, limit int, lambda float64) []Record {
	if len(records) <= limit {
		return records
	}

	if lambda < 0 {
		lambda = 0
	} else if lambda > 1 {
		lambda = 1
	}

	selected := make([]Record, 0, limit)
	copied := append([]Record(nil), records...)

	for len(selected) < limit && len(copied) > 0 {
		bestIdx := -1
		best := math.Inf(-1)

		for i, cand := range copied {
			maxSim := 0.0

			for _, sel := range selected {
				if sim := CosineSimilarity(cand.Embedding, sel.Embedding); sim > maxSim {
					maxSim = sim
				}
			}

			current := (lambda * cand.Score) - ((1 - lambda) * maxSim) // reward minus redundant

			if lambda == 0 && len(selected) > 0 {
				current = -maxSim
			}

			if current > best {
				best = current
				bestIdx = i
			}
		}

		if bestIdx != -1 {
			selected = append(selected, copied[bestIdx])
			copied = append(copied[:bestIdx], copied[bestIdx+1:]...)
		} else {
			break
		}
	}

	return selected
}

func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
