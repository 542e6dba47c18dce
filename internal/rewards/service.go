// Package rewards records XP for completed steps in the durable reward log.
package rewards

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/skillpath/internal/event"
	"github.com/abhisek/skillpath/internal/logger"
	"github.com/abhisek/skillpath/internal/session"
	"github.com/abhisek/skillpath/internal/store"
)

// Award is XP earned for completing a step.
type Award struct {
	SessionID string
	SkillID   string
	StepID    string
	XP        int
	AwardedAt time.Time
}

// Service turns session completion events into reward log entries.
type Service struct {
	eventRepo store.EventRepo
	log       *logger.Logger

	// SessionAwards accumulates awards granted since the last ResetSession.
	SessionAwards []Award
}

// NewService creates a reward service. A nil repo keeps awards in memory only.
func NewService(eventRepo store.EventRepo, log *logger.Logger) *Service {
	return &Service{
		eventRepo: eventRepo,
		log:       logger.OrNop(log).With("component", "rewards"),
	}
}

// Attach subscribes the service to completion events on bus and returns
// the subscription ID.
func (s *Service) Attach(bus *event.Bus) string {
	return bus.Subscribe(session.EventCompleted, func(e event.Event) {
		done, ok := e.(session.CompletedEvent)
		if !ok {
			return
		}
		if _, err := s.Award(context.Background(), done); err != nil {
			s.log.Error("reward not recorded", "skill_id", done.SkillID, "step_id", done.StepID, "error", err)
		}
	})
}

// Award records the XP of a completion. Steps worth no XP are skipped and
// return nil, as are replays of steps the ledger has already paid. A replay
// with no ledger entry is paid then, which recovers XP whose append failed
// after the step itself was saved.
func (s *Service) Award(ctx context.Context, done session.CompletedEvent) (*Award, error) {
	if done.XPReward <= 0 {
		s.log.Debug("no reward", "step_id", done.StepID, "xp", done.XPReward)
		return nil, nil
	}
	if done.Replay {
		paid, err := s.paid(ctx, done.SkillID, done.StepID)
		if err != nil {
			return nil, err
		}
		if paid {
			s.log.Debug("no reward for replay", "step_id", done.StepID)
			return nil, nil
		}
		s.log.Warn("replayed step missing from ledger, awarding now", "skill_id", done.SkillID, "step_id", done.StepID)
	}

	award := &Award{
		SessionID: done.SessionID,
		SkillID:   done.SkillID,
		StepID:    done.StepID,
		XP:        done.XPReward,
		AwardedAt: done.Timestamp(),
	}
	if err := s.persist(ctx, award); err != nil {
		return nil, err
	}
	s.SessionAwards = append(s.SessionAwards, *award)
	s.log.Info("reward recorded", "skill_id", award.SkillID, "step_id", award.StepID, "xp", award.XP)
	return award, nil
}

// SessionXP sums the XP in SessionAwards.
func (s *Service) SessionXP() int {
	total := 0
	for _, a := range s.SessionAwards {
		total += a.XP
	}
	return total
}

// ResetSession clears the session award accumulator.
func (s *Service) ResetSession() {
	s.SessionAwards = nil
}

// Totals returns lifetime XP overall and per skill.
func (s *Service) Totals(ctx context.Context) (store.RewardTotals, error) {
	if s.eventRepo == nil {
		totals := store.RewardTotals{BySkill: make(map[string]int)}
		for _, a := range s.SessionAwards {
			totals.TotalXP += a.XP
			totals.Awards++
			totals.BySkill[a.SkillID] += a.XP
		}
		return totals, nil
	}
	totals, err := s.eventRepo.RewardTotals(ctx)
	if err != nil {
		return store.RewardTotals{}, fmt.Errorf("reward totals: %w", err)
	}
	return totals, nil
}

// Recent returns the latest awards, newest first. Without a repo it lists
// SessionAwards.
func (s *Service) Recent(ctx context.Context, limit int) ([]store.RewardEventRecord, error) {
	if s.eventRepo != nil {
		return s.eventRepo.QueryRewardEvents(ctx, store.QueryOpts{Limit: limit})
	}
	var records []store.RewardEventRecord
	for i := len(s.SessionAwards) - 1; i >= 0; i-- {
		if limit > 0 && len(records) == limit {
			break
		}
		a := s.SessionAwards[i]
		records = append(records, store.RewardEventRecord{
			Sequence:  int64(i + 1),
			Timestamp: a.AwardedAt,
			SessionID: a.SessionID,
			SkillID:   a.SkillID,
			StepID:    a.StepID,
			XP:        a.XP,
		})
	}
	return records, nil
}

// paid reports whether the ledger already holds an award for the step.
// Without a repo nothing can fail to append, so a replay is always paid.
func (s *Service) paid(ctx context.Context, skillID, stepID string) (bool, error) {
	if s.eventRepo == nil {
		return true, nil
	}
	records, err := s.eventRepo.QueryRewardEvents(ctx, store.QueryOpts{SkillID: skillID, StepID: stepID, Limit: 1})
	if err != nil {
		return false, fmt.Errorf("check reward ledger: %w", err)
	}
	return len(records) > 0, nil
}

func (s *Service) persist(ctx context.Context, award *Award) error {
	if s.eventRepo == nil {
		return nil
	}
	return s.eventRepo.AppendRewardEvent(ctx, store.RewardEventData{
		SessionID: award.SessionID,
		SkillID:   award.SkillID,
		StepID:    award.StepID,
		XP:        award.XP,
	})
}
