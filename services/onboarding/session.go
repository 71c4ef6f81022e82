package onboarding

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"marketplace/models"
	"marketplace/utils"

	"go.uber.org/zap"
)

func sessionKey(id string) string {
	return utils.OnboardingSessionPrefix + id
}

func (s *DefaultOnboardingService) load(ctx context.Context, id string) (*models.OnboardingSession, error) {
	raw, ok, err := s.Sessions.Get(ctx, sessionKey(id))
	if err != nil {
		return nil, fmt.Errorf("failed to load onboarding session: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("onboarding session %s expired or unknown: %w", id, models.ErrNotFound)
	}
	var sess models.OnboardingSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		utils.GetLogger().Error("corrupt onboarding session", zap.String("sessionID", id), zap.Error(err))
		return nil, fmt.Errorf("onboarding session %s is unreadable: %w", id, models.ErrNotFound)
	}
	return &sess, nil
}

// save writes the session back and restarts its TTL.
func (s *DefaultOnboardingService) save(ctx context.Context, sess *models.OnboardingSession) error {
	sess.LastUpdatedAt = time.Now()
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.Sessions.Set(ctx, sessionKey(sess.ID), raw, s.TTL); err != nil {
		return fmt.Errorf("failed to save onboarding session: %w", err)
	}
	return nil
}

// checkOrder returns a StepOrderError naming the first incomplete step before step.
func checkOrder(sess *models.OnboardingSession, step string) error {
	i := slices.Index(models.OnboardingSteps, step)
	if i < 0 {
		verr := &models.ValidationError{}
		verr.Add("step", fmt.Sprintf("unknown step %q", step))
		return verr
	}
	for _, prev := range models.OnboardingSteps[:i] {
		if !sess.IsCompleted(prev) {
			return &StepOrderError{Step: step, Missing: prev}
		}
	}
	return nil
}

// nextStep is the first incomplete step, or "finalize" once every step is in.
func nextStep(sess *models.OnboardingSession) string {
	for _, step := range models.OnboardingSteps {
		if !sess.IsCompleted(step) {
			return step
		}
	}
	return "finalize"
}

// view builds the client-facing state. The password and its hash never leave the server.
func (s *DefaultOnboardingService) view(sess *models.OnboardingSession) *models.OnboardingState {
	st := &models.OnboardingState{
		SessionID: sess.ID,
		NextStep:  nextStep(sess),
		Completed: slices.Clone(sess.Completed),
		Profile:   sess.Profile,
		Services:  sess.Services,
		Documents: sess.Documents,
		Uploaded:  sess.Uploaded,
		ExpiresAt: sess.LastUpdatedAt.Add(s.TTL),
	}
	if sess.Account != nil {
		acc := *sess.Account
		acc.Password = ""
		st.Account = &acc
	}
	return st
}

func (s *DefaultOnboardingService) State(ctx context.Context, sessionID string) (*models.OnboardingState, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}
