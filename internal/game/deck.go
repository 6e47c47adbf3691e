package game

import (
	"math"
	"math/rand/v2"
)

// RosterEntry is one champion as supplied by the upstream roster, before
// stats are derived.
type RosterEntry struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	ReturnRate     float64 `yaml:"return_rate"`
	StabilityScore float64 `yaml:"stability_score"`
}

// BuildDecks derives one deck per faction. Attack and defense are normalised
// across the whole pool (every faction), so a champion's stats depend on the
// pool it is built with. An empty roster yields an empty map.
func BuildDecks(roster map[string][]RosterEntry) map[string][]Card {
	decks := make(map[string][]Card, len(roster))

	first := true
	var minRR, maxRR, minSS, maxSS float64
	for _, entries := range roster {
		for _, e := range entries {
			if first {
				minRR, maxRR = e.ReturnRate, e.ReturnRate
				minSS, maxSS = e.StabilityScore, e.StabilityScore
				first = false
				continue
			}
			minRR = math.Min(minRR, e.ReturnRate)
			maxRR = math.Max(maxRR, e.ReturnRate)
			minSS = math.Min(minSS, e.StabilityScore)
			maxSS = math.Max(maxSS, e.StabilityScore)
		}
	}
	rrRange := maxRR - minRR
	if rrRange == 0 {
		rrRange = 1
	}
	ssRange := maxSS - minSS
	if ssRange == 0 {
		ssRange = 1
	}

	for faction, entries := range roster {
		deck := make([]Card, 0, len(entries))
		for _, e := range entries {
			atk := int(math.Round((e.ReturnRate - minRR) / rrRange * MaxAttack))
			def := int(math.Round((e.StabilityScore - minSS) / ssRange * MaxDefense))
			if atk+def > StatCap {
				def = StatCap - atk
			}
			deck = append(deck, Card{
				ID:             CardID(faction + "/" + e.ID),
				ChampionID:     e.ID,
				Name:           e.Name,
				FactionID:      faction,
				Attack:         atk,
				Defense:        def,
				Health:         BaseHealth,
				MaxHealth:      BaseHealth,
				Class:          Classify(atk, def),
				ReturnRate:     e.ReturnRate,
				StabilityScore: e.StabilityScore,
			})
		}
		decks[faction] = deck
	}
	return decks
}

// Classify assigns a class from derived stats.
func Classify(attack, defense int) Class {
	switch {
	case defense >= attack+ClassGap:
		return ClassDefender
	case attack >= defense+ClassGap:
		return ClassAttacker
	default:
		return ClassBruiser
	}
}

// Shuffle randomizes ids in place (Fisher–Yates).
func Shuffle[T any](ids []T, r *rand.Rand) {
	r.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
}

// Draw splits the first n cards off pile without replacement. The returned
// slices do not alias pile.
func Draw[T any](pile []T, n int) (drawn, rest []T) {
	n = max(0, min(n, len(pile)))
	drawn = append([]T(nil), pile[:n]...)
	rest = append([]T(nil), pile[n:]...)
	return drawn, rest
}
