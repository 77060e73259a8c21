package players

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/models"
)

const similarityThreshold = 0.7

// Search finds players whose name matches query, best match first. Subsequence
// matches are ranked by edit distance; when none exist the closest names by
// Levenshtein similarity are used instead.
func (m *Manager) Search(query string, limit int) []*models.Player {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil
	}

	all := m.Players()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Sort(ranks)
	var out []*models.Player
	for _, r := range ranks {
		out = append(out, all[r.OriginalIndex])
		if len(out) == limit {
			return out
		}
	}
	if len(out) > 0 {
		return out
	}

	type scored struct {
		p   *models.Player
		sim float64
	}
	var near []scored
	q := strings.ToLower(query)
	for _, p := range all {
		name := strings.ToLower(p.Name)
		distance := fuzzy.LevenshteinDistance(q, name)
		maxLen := float64(max(len(q), len(name)))
		similarity := 1 - float64(distance)/maxLen
		if similarity > similarityThreshold {
			near = append(near, scored{p, similarity})
		}
	}
	sort.SliceStable(near, func(i, j int) bool { return near[i].sim > near[j].sim })
	for _, c := range near {
		out = append(out, c.p)
		if len(out) == limit {
			break
		}
	}
	return out
}
