package game

import (
	"time"

	"github.com/google/uuid"

	"skyland/internal/catalog"
)

// CheckForNewCards rolls for a fresh mission and a fresh event after a
// player action. At most one of each is offered per call. Missions
// already active or already sitting in the pending pile are out of the
// draw, so the same mission id is never live twice; events carry no such
// restriction.
func (e *Engine) CheckForNewCards(state GameState, trigger Trigger) (GameState, []Card) {
	odds := cardOdds[trigger]
	next := state
	var offered []Card

	if len(e.cat.Missions) > 0 && e.rnd.Float64() < odds.Mission {
		if candidates := e.missionCandidates(state); len(candidates) > 0 {
			pick := candidates[e.pickIndex(len(candidates))]
			card := Card{
				InstanceID:   uuid.NewString(),
				Kind:         CardMission,
				RefID:        pick.ID,
				OfferedAtDay: state.CurrentDay,
			}
			next.PendingCards = append(next.PendingCards, card)
			offered = append(offered, card)
		}
	}

	if len(e.cat.Events) > 0 && e.rnd.Float64() < odds.Event {
		pick := e.cat.Events[e.pickIndex(len(e.cat.Events))]
		card := Card{
			InstanceID:   uuid.NewString(),
			Kind:         CardEvent,
			RefID:        pick.ID,
			OfferedAtDay: state.CurrentDay,
		}
		next.PendingCards = append(next.PendingCards, card)
		offered = append(offered, card)
	}
	return next, offered
}

func (e *Engine) missionCandidates(state GameState) []catalog.Mission {
	taken := make(map[string]bool)
	for _, m := range state.ActiveMissions {
		taken[m.RefID] = true
	}
	for _, c := range state.PendingCards {
		if c.Kind == CardMission {
			taken[c.RefID] = true
		}
	}
	var out []catalog.Mission
	for _, m := range e.cat.Missions {
		if !taken[m.ID] {
			out = append(out, m)
		}
	}
	return out
}

func (e *Engine) pickIndex(n int) int {
	idx := int(e.rnd.Float64() * float64(n))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// AcceptCard moves a pending card to active: missions join the active
// mission list, events start their duration clock. Either way the card
// enters the player's collection.
func (e *Engine) AcceptCard(state GameState, instanceID string, now time.Time) (GameState, error) {
	card, rest, ok := takePending(state.PendingCards, instanceID)
	if !ok {
		return state, ErrCardNotFound
	}
	next := state
	next.PendingCards = rest
	switch card.Kind {
	case CardMission:
		next.ActiveMissions = append(next.ActiveMissions, MissionInstance{
			InstanceID:    card.InstanceID,
			RefID:         card.RefID,
			Status:        StatusActive,
			AcceptedAtDay: state.CurrentDay,
			AcceptedAt:    now,
		})
	case CardEvent:
		next.ActiveEvents = append(next.ActiveEvents, EventInstance{
			InstanceID:    card.InstanceID,
			RefID:         card.RefID,
			Status:        StatusActive,
			AcceptedAtDay: state.CurrentDay,
			AcceptedAt:    now,
		})
	}
	next.PlayerCards = append(next.PlayerCards, PlayerCard{
		InstanceID:    card.InstanceID,
		Kind:          card.Kind,
		RefID:         card.RefID,
		Status:        StatusActive,
		ObtainedAtDay: state.CurrentDay,
		IsNew:         true,
	})
	return next, nil
}

// DeclineCard archives a pending card without activating it. The engine
// declines any kind; the API layer force-accepts events instead of
// routing them here, preserving the game's "events always happen" rule.
func (e *Engine) DeclineCard(state GameState, instanceID string) (GameState, error) {
	card, rest, ok := takePending(state.PendingCards, instanceID)
	if !ok {
		return state, ErrCardNotFound
	}
	next := state
	next.PendingCards = rest
	next.PlayerCards = append(next.PlayerCards, PlayerCard{
		InstanceID:    card.InstanceID,
		Kind:          card.Kind,
		RefID:         card.RefID,
		Status:        StatusDeclined,
		ObtainedAtDay: state.CurrentDay,
		IsNew:         true,
	})
	return next, nil
}

func takePending(cards []Card, instanceID string) (Card, []Card, bool) {
	for i, c := range cards {
		if c.InstanceID == instanceID {
			rest := make([]Card, 0, len(cards)-1)
			rest = append(rest, cards[:i]...)
			rest = append(rest, cards[i+1:]...)
			return c, rest, true
		}
	}
	return Card{}, cards, false
}

// UpdateActiveCards settles the card decks against the current state:
// missions whose predicate now holds complete and pay their stars, and
// events whose duration has elapsed drop off. Stars earned by several
// missions in the same pass stack before the level is recomputed.
func (e *Engine) UpdateActiveCards(state GameState) (GameState, []CompletedMission) {
	next := state
	var completed []CompletedMission

	var stillActive []MissionInstance
	for _, inst := range state.ActiveMissions {
		m, ok := e.cat.MissionByID(inst.RefID)
		if ok && missionSatisfied(m, state.Allocations) {
			inst.Status = StatusCompleted
			inst.CompletedAtDay = state.CurrentDay
			next.Stars += m.RewardStars
			next.PlayerCards = markPlayerCard(next.PlayerCards, inst.InstanceID, StatusCompleted)
			completed = append(completed, CompletedMission{
				RefID:       m.ID,
				Title:       m.Title,
				RewardStars: m.RewardStars,
			})
			continue
		}
		stillActive = append(stillActive, inst)
	}
	next.ActiveMissions = stillActive

	var running []EventInstance
	for _, inst := range state.ActiveEvents {
		ev, ok := e.cat.EventByID(inst.RefID)
		if !ok || state.CurrentDay-inst.AcceptedAtDay >= ev.DurationDays {
			next.PlayerCards = markPlayerCard(next.PlayerCards, inst.InstanceID, StatusExpired)
			continue
		}
		running = append(running, inst)
	}
	next.ActiveEvents = running

	next.Level = LevelForStars(e.cat.Levels, next.Stars).Level
	return next, completed
}

func markPlayerCard(cards []PlayerCard, instanceID string, status CardStatus) []PlayerCard {
	for i := range cards {
		if cards[i].InstanceID == instanceID {
			cards[i].Status = status
		}
	}
	return cards
}

// missionSatisfied evaluates the completion predicate. The thresholds
// are inclusive except the spread rule, which wants every target
// strictly below its cap; boundary values matter here.
func missionSatisfied(m catalog.Mission, allocs []AssetAllocation) bool {
	byID := make(map[string]float64, len(allocs))
	for _, a := range allocs {
		byID[a.ID] = a.Allocation
	}
	switch m.Predicate {
	case catalog.PredicateBelowEach:
		for _, t := range m.TargetAssets {
			if byID[t] >= m.Threshold {
				return false
			}
		}
		return true
	case catalog.PredicateFloor:
		return byID[m.TargetAssets[0]] >= m.Threshold
	case catalog.PredicateCombinedFloor:
		var sum float64
		for _, t := range m.TargetAssets {
			sum += byID[t]
		}
		return sum >= m.Threshold
	}
	return false
}

// OfferCard creates a pending card for a specific catalog id, used by
// the debug trigger. An id that matches neither deck is reported, never
// created.
func (e *Engine) OfferCard(state GameState, refID string) (GameState, Card, error) {
	var kind CardKind
	if _, ok := e.cat.MissionByID(refID); ok {
		kind = CardMission
	} else if _, ok := e.cat.EventByID(refID); ok {
		kind = CardEvent
	} else {
		return state, Card{}, ErrUnknownCatalogID
	}
	card := Card{
		InstanceID:   uuid.NewString(),
		Kind:         kind,
		RefID:        refID,
		OfferedAtDay: state.CurrentDay,
	}
	next := state
	next.PendingCards = append(next.PendingCards, card)
	return next, card, nil
}
