package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"pfm/internal/core"
	"pfm/internal/log"
	"pfm/internal/storage"
)

// Savings holds named goals per username. Goal ids are unique per user and
// never reused.
type Savings struct {
	store  storage.RecordStore
	logger *log.Logger
}

func NewSavings(store storage.RecordStore, logger *log.Logger) *Savings {
	return &Savings{store: store, logger: log.OrDiscard(logger, log.ComponentSavings)}
}

func encodeGoal(g core.Goal) []string {
	return []string{
		g.Username,
		strconv.Itoa(g.ID),
		g.Name,
		core.FormatAmount(g.Target),
		core.FormatAmount(g.Current),
		g.CreatedOn.String(),
	}
}

func decodeGoal(r []string) (core.Goal, error) {
	id, err := strconv.Atoi(strings.TrimSpace(field(r, 1)))
	if err != nil {
		return core.Goal{}, fmt.Errorf("goal id: %w", err)
	}
	target, err := core.ParseAmount(field(r, 3))
	if err != nil {
		return core.Goal{}, err
	}
	current, err := core.ParseAmount(field(r, 4))
	if err != nil {
		return core.Goal{}, err
	}
	created, err := core.ParseDate(field(r, 5))
	if err != nil {
		return core.Goal{}, err
	}
	return core.Goal{
		Username:  field(r, 0),
		ID:        id,
		Name:      field(r, 2),
		Target:    target,
		Current:   current,
		CreatedOn: created,
	}, nil
}

// List returns the user's goals in stored order, skipping malformed rows.
func (s *Savings) List(ctx context.Context, username string) ([]core.Goal, error) {
	rows, err := s.store.ReadAll(ctx, SetSavings)
	if err != nil {
		return nil, err
	}
	var goals []core.Goal
	for _, r := range rows {
		if len(r) == 0 || r[0] != username {
			continue
		}
		g, err := decodeGoal(r)
		if err != nil {
			s.logger.WarnContext(ctx, "Skipping malformed goal row", log.FieldUsername, username, log.FieldError, err)
			continue
		}
		goals = append(goals, g)
	}
	return goals, nil
}

// replace rewrites the user's goals with goals, leaving other users' rows
// exactly as stored.
func (s *Savings) replace(ctx context.Context, username string, goals []core.Goal) error {
	rows, err := s.store.ReadAll(ctx, SetSavings)
	if err != nil {
		return err
	}
	kept := make([][]string, 0, len(rows)+1)
	for _, r := range rows {
		if len(r) > 0 && r[0] != username {
			kept = append(kept, r)
		}
	}
	for _, g := range goals {
		kept = append(kept, encodeGoal(g))
	}
	return s.store.WriteAll(ctx, SetSavings, SavingsHeader, kept)
}

// Create adds a goal with id = highest existing id for the user + 1.
func (s *Savings) Create(ctx context.Context, username, name string, target decimal.Decimal, createdOn core.Date) (core.Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.Goal{}, fmt.Errorf("%w: goal name is empty", core.ErrValidation)
	}
	if !target.IsPositive() {
		return core.Goal{}, fmt.Errorf("%w: target must be greater than zero", core.ErrValidation)
	}

	goals, err := s.List(ctx, username)
	if err != nil {
		return core.Goal{}, err
	}
	next := 1
	for _, g := range goals {
		if g.ID >= next {
			next = g.ID + 1
		}
	}
	goal := core.Goal{
		Username:  username,
		ID:        next,
		Name:      name,
		Target:    target,
		Current:   decimal.Zero,
		CreatedOn: createdOn,
	}
	if err := s.replace(ctx, username, append(goals, goal)); err != nil {
		return core.Goal{}, err
	}
	s.logger.InfoContext(ctx, "Savings goal created",
		log.NewFields().WithOperation(log.OpCreate).WithGoal(username, goal.ID).ToSlice()...)
	return goal, nil
}

// AddMoney increases the saved amount of one of the user's goals.
func (s *Savings) AddMoney(ctx context.Context, username string, goalID int, amount decimal.Decimal) (core.Goal, error) {
	if !amount.IsPositive() {
		return core.Goal{}, fmt.Errorf("%w: amount must be greater than zero", core.ErrValidation)
	}
	goals, err := s.List(ctx, username)
	if err != nil {
		return core.Goal{}, err
	}
	idx := -1
	for i := range goals {
		if goals[i].ID == goalID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.Goal{}, fmt.Errorf("goal %d: %w", goalID, core.ErrNotFound)
	}
	goals[idx].Current = goals[idx].Current.Add(amount)
	if err := s.replace(ctx, username, goals); err != nil {
		return core.Goal{}, err
	}
	s.logger.InfoContext(ctx, "Savings goal topped up",
		log.NewFields().WithOperation(log.OpUpdate).WithGoal(username, goalID).ToSlice()...)
	return goals[idx], nil
}

// Delete removes the user's goal with goalID. An unknown id is a no-op.
func (s *Savings) Delete(ctx context.Context, username string, goalID int) error {
	goals, err := s.List(ctx, username)
	if err != nil {
		return err
	}
	kept := goals[:0]
	for _, g := range goals {
		if g.ID != goalID {
			kept = append(kept, g)
		}
	}
	if len(kept) == len(goals) {
		return nil
	}
	if err := s.replace(ctx, username, kept); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Savings goal deleted",
		log.NewFields().WithOperation(log.OpDelete).WithGoal(username, goalID).ToSlice()...)
	return nil
}
