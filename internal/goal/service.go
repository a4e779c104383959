package goal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/auth"
	"github.com/saulo-duarte/ascend-lambda/internal/config"
	"github.com/saulo-duarte/ascend-lambda/internal/kanban"
	"github.com/saulo-duarte/ascend-lambda/internal/leveling"
	"github.com/saulo-duarte/ascend-lambda/internal/profile"
	"github.com/saulo-duarte/ascend-lambda/internal/progress"
	util "github.com/saulo-duarte/ascend-lambda/internal/utils"
	"github.com/sirupsen/logrus"
)

// GoalCompletionXP is credited the first time a goal reaches done.
const GoalCompletionXP = 100

var (
	ErrGoalNotFound = errors.New("goal not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidID    = errors.New("invalid id format")
	ErrInvalidInput = errors.New("invalid goal")
)

// XPAwarder credits experience to the owner's profile.
type XPAwarder interface {
	AwardXP(ctx context.Context, userID uuid.UUID, amount int, attribute *profile.Attribute) (*leveling.Result, error)
}

type GoalService interface {
	Create(ctx context.Context, dto CreateGoalDTO) (*GoalResponse, error)
	List(ctx context.Context, pillar progress.Pillar) ([]GoalResponse, error)
	Board(ctx context.Context) ([]ColumnResponse, error)
	Get(ctx context.Context, id string) (*GoalResponse, error)
	Update(ctx context.Context, id string, dto UpdateGoalDTO) (*GoalResponse, error)
	Delete(ctx context.Context, id string) error
	Move(ctx context.Context, id string, dir kanban.Direction) ([]GoalResponse, error)
	PillarGoals(ctx context.Context, userID uuid.UUID) ([]progress.PillarGoal, error)
}

type goalService struct {
	repo GoalRepository
	xp   XPAwarder
}

func NewService(repo GoalRepository, xp XPAwarder) GoalService {
	return &goalService{repo: repo, xp: xp}
}

func getUserIDFromContext(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without authentication", action)
		return uuid.Nil, ErrUnauthorized
	}
	return uuid.MustParse(claims.UserID), nil
}

func parseUUID(log logrus.FieldLogger, id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warn("Invalid goal ID")
		return uuid.Nil, ErrInvalidID
	}
	return parsed, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validate(g *Goal) error {
	if strings.TrimSpace(g.Title) == "" {
		return invalid("title is required")
	}
	if !g.Status.IsValid() {
		return invalid("unknown status %q", g.Status)
	}
	if !g.Pillar.IsValid() {
		return invalid("unknown pillar %q", g.Pillar)
	}
	if g.Target != nil && *g.Target < 0 {
		return invalid("target must not be negative")
	}
	return nil
}

// sortColumn returns goals in (order, created_at) order.
func sortColumn(goals []Goal) []Goal {
	its := items(goals)
	kanban.Sort(its)
	byID := make(map[uuid.UUID]Goal, len(goals))
	for _, g := range goals {
		byID[g.ID] = g
	}
	out := make([]Goal, len(its))
	for i, it := range its {
		out[i] = byID[it.ID]
	}
	return out
}

func responses(goals []Goal) []GoalResponse {
	out := make([]GoalResponse, 0, len(goals))
	for i := range goals {
		out = append(out, toResponse(&goals[i]))
	}
	return out
}

func (s *goalService) find(ctx context.Context, log logrus.FieldLogger, id string, action string) (*Goal, error) {
	userID, err := getUserIDFromContext(ctx, log, action)
	if err != nil {
		return nil, err
	}
	goalID, err := parseUUID(log, id)
	if err != nil {
		return nil, err
	}
	g, err := s.repo.FindByIDAndUserID(goalID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.WithFields(logrus.Fields{
				"goal_id": id,
				"user_id": userID,
			}).Warn("Goal not found or does not belong to user")
			return nil, ErrGoalNotFound
		}
		log.WithError(err).Error("Error finding goal by ID")
		return nil, err
	}
	return g, nil
}

// appendTo places g at the end of the column for its current status.
func (s *goalService) appendTo(g *Goal) error {
	column, err := s.repo.ListByStatus(g.UserID, g.Status)
	if err != nil {
		return err
	}
	g.Order = kanban.Next(items(column))
	return nil
}

// markDone stamps completion and reports whether the one-time reward is due.
func markDone(g *Goal, now time.Time) bool {
	g.CompletedAt = &now
	if g.XPAwarded {
		return false
	}
	g.XPAwarded = true
	return true
}

func (s *goalService) reward(ctx context.Context, g *Goal) {
	log := config.WithContext(ctx)
	res, err := s.xp.AwardXP(ctx, g.UserID, GoalCompletionXP, nil)
	if err != nil {
		log.WithError(err).WithField("goal_id", g.ID).Error("Failed to award goal completion xp")
		return
	}
	log.WithFields(logrus.Fields{
		"goal_id":    g.ID,
		"level":      res.State.Level,
		"leveled_up": res.LeveledUp,
	}).Info("Goal completion xp awarded")
}

func (s *goalService) Create(ctx context.Context, dto CreateGoalDTO) (*GoalResponse, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "create goal")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	g := &Goal{
		ID:            uuid.New(),
		Title:         strings.TrimSpace(dto.Title),
		Description:   dto.Description,
		Target:        dto.Target,
		Actual:        dto.Actual,
		ManualPercent: dto.ManualPercent,
		Status:        dto.Status,
		Pillar:        dto.Pillar,
		Deadline:      util.ToTimePtr(dto.Deadline),
		UserID:        userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if g.Status == "" {
		g.Status = StatusNotStarted
	}
	if err := validate(g); err != nil {
		return nil, err
	}
	if err := s.appendTo(g); err != nil {
		log.WithError(err).Error("Failed to load goal column")
		return nil, err
	}

	award := g.Status == StatusDone && markDone(g, now)

	if err := s.repo.Create(g); err != nil {
		log.WithError(err).Error("Failed to create goal")
		return nil, util.NewWriteError("create goal", err)
	}
	if award {
		s.reward(ctx, g)
	}

	log.WithField("goal_id", g.ID).Info("Goal created successfully")
	resp := toResponse(g)
	return &resp, nil
}

func (s *goalService) List(ctx context.Context, pillar progress.Pillar) ([]GoalResponse, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list goals")
	if err != nil {
		return nil, err
	}

	goals, err := s.repo.ListByUser(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list goals")
		return nil, err
	}
	if pillar != "" {
		filtered := goals[:0]
		for _, g := range goals {
			if g.Pillar == pillar {
				filtered = append(filtered, g)
			}
		}
		goals = filtered
	}
	return responses(goals), nil
}

func (s *goalService) Board(ctx context.Context) ([]ColumnResponse, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "load goal board")
	if err != nil {
		return nil, err
	}

	goals, err := s.repo.ListByUser(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list goals for board")
		return nil, err
	}

	byStatus := make(map[GoalStatus][]Goal, len(AllStatuses))
	for _, g := range goals {
		byStatus[g.Status] = append(byStatus[g.Status], g)
	}
	board := make([]ColumnResponse, 0, len(AllStatuses))
	for _, status := range AllStatuses {
		board = append(board, ColumnResponse{
			Status: status,
			Goals:  responses(sortColumn(byStatus[status])),
		})
	}
	return board, nil
}

func (s *goalService) Get(ctx context.Context, id string) (*GoalResponse, error) {
	log := config.WithContext(ctx)
	g, err := s.find(ctx, log, id, "get goal")
	if err != nil {
		return nil, err
	}
	resp := toResponse(g)
	return &resp, nil
}

func (s *goalService) Update(ctx context.Context, id string, dto UpdateGoalDTO) (*GoalResponse, error) {
	log := config.WithContext(ctx)
	existing, err := s.find(ctx, log, id, "update goal")
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		existing.Title = strings.TrimSpace(*dto.Title)
	}
	if dto.Description != nil {
		existing.Description = *dto.Description
	}
	if dto.ClearTarget {
		existing.Target = nil
		existing.Actual = nil
	} else {
		if dto.Target != nil {
			existing.Target = dto.Target
		}
		if dto.Actual != nil {
			existing.Actual = dto.Actual
		}
	}
	if dto.ClearManual {
		existing.ManualPercent = nil
	} else if dto.ManualPercent != nil {
		existing.ManualPercent = dto.ManualPercent
	}
	if dto.Pillar != nil {
		existing.Pillar = *dto.Pillar
	}
	if dto.Deadline != nil {
		existing.Deadline = util.ToTimePtr(dto.Deadline)
	}

	now := time.Now()
	award := false
	if dto.Status != nil && *dto.Status != existing.Status {
		existing.Status = *dto.Status
		if err := validate(existing); err != nil {
			return nil, err
		}
		if err := s.appendTo(existing); err != nil {
			log.WithError(err).Error("Failed to load goal column")
			return nil, err
		}
		if existing.Status == StatusDone {
			award = markDone(existing, now)
		} else {
			existing.CompletedAt = nil
		}
	}
	if err := validate(existing); err != nil {
		return nil, err
	}

	existing.UpdatedAt = now
	if err := s.repo.Update(existing); err != nil {
		log.WithError(err).Error("Failed to update goal")
		return nil, util.NewWriteError("update goal", err)
	}
	if award {
		s.reward(ctx, existing)
	}

	log.WithField("goal_id", existing.ID).Info("Goal updated successfully")
	resp := toResponse(existing)
	return &resp, nil
}

func (s *goalService) Delete(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	g, err := s.find(ctx, log, id, "delete goal")
	if err != nil {
		return err
	}
	if err := s.repo.Delete(g.ID, g.UserID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrGoalNotFound
		}
		log.WithError(err).Error("Failed to delete goal")
		return util.NewWriteError("delete goal", err)
	}
	log.WithField("goal_id", id).Info("Goal deleted successfully")
	return nil
}

// Move swaps the goal with its neighbour inside its status column and returns
// the re-sorted column.
func (s *goalService) Move(ctx context.Context, id string, dir kanban.Direction) ([]GoalResponse, error) {
	log := config.WithContext(ctx)
	if !dir.IsValid() {
		return nil, kanban.ErrInvalidDirection
	}
	g, err := s.find(ctx, log, id, "move goal")
	if err != nil {
		return nil, err
	}

	column, err := s.repo.ListByStatus(g.UserID, g.Status)
	if err != nil {
		log.WithError(err).Error("Failed to load goal column")
		return nil, err
	}

	changes, err := kanban.Move(items(column), g.ID, dir)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return responses(sortColumn(column)), nil
	}

	if err := s.repo.ApplyOrder(g.UserID, changes); err != nil {
		log.WithError(err).WithField("goal_id", g.ID).Error("Failed to persist goal order")
		return nil, util.NewWriteError("move goal", err)
	}

	orders := make(map[uuid.UUID]int, len(changes))
	for _, c := range changes {
		orders[c.ID] = c.Order
	}
	for i := range column {
		if o, ok := orders[column[i].ID]; ok {
			column[i].Order = o
		}
	}
	return responses(sortColumn(column)), nil
}

func (s *goalService) PillarGoals(ctx context.Context, userID uuid.UUID) ([]progress.PillarGoal, error) {
	goals, err := s.repo.ListByUser(userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list goals for pillars")
		return nil, err
	}
	out := make([]progress.PillarGoal, 0, len(goals))
	for i := range goals {
		out = append(out, progress.PillarGoal{Pillar: goals[i].Pillar, Input: goals[i].ProgressInput()})
	}
	return out, nil
}
