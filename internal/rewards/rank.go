package rewards

// Rank is a learner title derived from lifetime XP.
type Rank string

const (
	RankNovice     Rank = "novice"
	RankApprentice Rank = "apprentice"
	RankAdept      Rank = "adept"
	RankMaster     Rank = "master"
)

// AllRanks returns all ranks from lowest to highest.
func AllRanks() []Rank {
	return []Rank{RankNovice, RankApprentice, RankAdept, RankMaster}
}

// DisplayName returns a human-readable label for the rank.
func (r Rank) DisplayName() string {
	switch r {
	case RankNovice:
		return "Novice"
	case RankApprentice:
		return "Apprentice"
	case RankAdept:
		return "Adept"
	case RankMaster:
		return "Master"
	default:
		return string(r)
	}
}

// Threshold returns the XP needed to reach the rank.
func (r Rank) Threshold() int {
	switch r {
	case RankApprentice:
		return 100
	case RankAdept:
		return 500
	case RankMaster:
		return 2000
	default:
		return 0
	}
}

// RankForXP returns the highest rank whose threshold xp meets.
func RankForXP(xp int) Rank {
	rank := RankNovice
	for _, r := range AllRanks() {
		if xp >= r.Threshold() {
			rank = r
		}
	}
	return rank
}

// NextRank returns the rank after r and whether one exists.
func NextRank(r Rank) (Rank, bool) {
	ranks := AllRanks()
	for i, candidate := range ranks {
		if candidate == r && i+1 < len(ranks) {
			return ranks[i+1], true
		}
	}
	return "", false
}
