package simulation

import "math/rand"

// GenerateSchedule builds a round-robin schedule for teams and repeats it
// until weeks rounds exist. With an odd team count one team sits out each
// round. teams is not modified.
func GenerateSchedule(teams []Team, weeks int, rng *rand.Rand) [][]Matchup {
	order := append([]Team(nil), teams...)
	if rng != nil {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}
	if len(order)%2 != 0 {
		order = append(order, nil)
	}
	n := len(order)
	if n < 2 || weeks <= 0 {
		return nil
	}

	rounds := make([][]Matchup, 0, n-1)
	for i := 0; i < n-1; i++ {
		var round []Matchup
		for j := 0; j < n/2; j++ {
			home, away := order[j], order[n-1-j]
			if home == nil || away == nil {
				continue
			}
			if i%2 == 1 {
				home, away = away, home
			}
			round = append(round, Matchup{Home: home, Away: away})
		}
		rounds = append(rounds, round)

		// rotate everyone except the first slot
		last := order[n-1]
		copy(order[2:], order[1:n-1])
		order[1] = last
	}

	schedule := make([][]Matchup, weeks)
	for w := range schedule {
		schedule[w] = rounds[w%len(rounds)]
	}
	return schedule
}
