package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/config"
	"github.com/saulo-duarte/ascend-lambda/internal/leveling"
	util "github.com/saulo-duarte/ascend-lambda/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

type ProfileService interface {
	EnsureProfile(ctx context.Context, userID uuid.UUID, displayName string) error
	Get(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error)
	UpdateReflection(ctx context.Context, userID uuid.UUID, dto UpdateReflectionDTO) (*ProfileResponse, error)
	AddXP(ctx context.Context, userID uuid.UUID, amount int) (*XPResponse, error)
	AwardXP(ctx context.Context, userID uuid.UUID, amount int, attribute *Attribute) (*leveling.Result, error)
	SpendCoins(ctx context.Context, userID uuid.UUID, amount int) (*SpendResult, error)
	ToggleChecklist(ctx context.Context, userID uuid.UUID, item ChecklistItem) (*ProfileResponse, error)
	SetEqualizer(ctx context.Context, userID uuid.UUID, values Equalizer) (*ProfileResponse, error)
	SetAIKey(ctx context.Context, userID uuid.UUID, apiKey string) error
	AIKey(ctx context.Context, userID uuid.UUID) (string, error)
}

type profileService struct {
	repo  ProfileRepository
	today func() util.DateKey
}

func NewService(repo ProfileRepository) ProfileService {
	return &profileService{repo: repo, today: util.Today}
}

func newProfile(userID uuid.UUID, displayName string) *Profile {
	now := time.Now()
	return &Profile{
		ID:          uuid.New(),
		UserID:      userID,
		DisplayName: displayName,
		Level:       1,
		Attributes:  datatypes.NewJSONType(Attributes{}),
		Checklist:   datatypes.NewJSONType(Checklist{}),
		Equalizer:   datatypes.NewJSONType(Equalizer{}),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *profileService) toResponse(p *Profile) *ProfileResponse {
	state := p.State()
	checklist := p.Checklist.Data()
	if p.ChecklistDate != s.today().String() {
		checklist = Checklist{}
	}
	return &ProfileResponse{
		UserID:        p.UserID,
		DisplayName:   p.DisplayName,
		Purpose:       p.Purpose,
		Vision:        p.Vision,
		CoreValues:    p.CoreValues,
		Level:         state.Level,
		XP:            state.XP,
		XPToNextLevel: state.Threshold() - state.XP,
		LevelProgress: state.Progress(),
		Coins:         state.Coins,
		Attributes:    p.Attributes.Data(),
		Checklist:     checklist,
		ChecklistDate: s.today().String(),
		Equalizer:     p.Equalizer.Data(),
		HasAIKey:      p.EncryptedAIKey != "",
	}
}

func (s *profileService) EnsureProfile(ctx context.Context, userID uuid.UUID, displayName string) error {
	_, err := s.repo.FindByUserID(userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return err
	}
	if err := s.repo.Create(newProfile(userID, displayName)); err != nil {
		return util.NewWriteError("create profile", err)
	}
	config.WithContext(ctx).WithField("user_id", userID).Info("Profile created")
	return nil
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	p, err := s.repo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(p), nil
}

func (s *profileService) mutate(ctx context.Context, userID uuid.UUID, op string, fn func(p *Profile) error) (*Profile, error) {
	p, err := s.repo.Mutate(userID, func(p *Profile) error {
		if err := fn(p); err != nil {
			return err
		}
		p.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		var keyErr *InvalidKeyError
		if errors.Is(err, ErrProfileNotFound) || errors.Is(err, leveling.ErrNegativeXP) ||
			errors.Is(err, leveling.ErrXPTooLarge) || errors.As(err, &keyErr) {
			return nil, err
		}
		config.WithContext(ctx).WithError(err).Errorf("Failed to %s", op)
		return nil, util.NewWriteError(op, err)
	}
	return p, nil
}

func (s *profileService) UpdateReflection(ctx context.Context, userID uuid.UUID, dto UpdateReflectionDTO) (*ProfileResponse, error) {
	p, err := s.mutate(ctx, userID, "update profile", func(p *Profile) error {
		if dto.DisplayName != nil {
			p.DisplayName = *dto.DisplayName
		}
		if dto.Purpose != nil {
			p.Purpose = *dto.Purpose
		}
		if dto.Vision != nil {
			p.Vision = *dto.Vision
		}
		if dto.CoreValues != nil {
			p.CoreValues = *dto.CoreValues
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(p), nil
}

func (s *profileService) AwardXP(ctx context.Context, userID uuid.UUID, amount int, attribute *Attribute) (*leveling.Result, error) {
	var result leveling.Result
	_, err := s.mutate(ctx, userID, "award xp", func(p *Profile) error {
		res, err := leveling.AddXP(p.State(), amount)
		if err != nil {
			return err
		}
		p.SetState(res.State)
		if attribute != nil && attribute.IsValid() {
			attrs := p.Attributes.Data()
			if attrs == nil {
				attrs = Attributes{}
			}
			attrs[*attribute]++
			p.Attributes = datatypes.NewJSONType(attrs)
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.LeveledUp {
		config.WithContext(ctx).WithFields(logrus.Fields{
			"user_id": userID,
			"level":   result.State.Level,
			"bonus":   result.BonusCoins,
		}).Info("Level up")
	}
	return &result, nil
}

func (s *profileService) AddXP(ctx context.Context, userID uuid.UUID, amount int) (*XPResponse, error) {
	res, err := s.AwardXP(ctx, userID, amount, nil)
	if err != nil {
		return nil, err
	}
	return &XPResponse{Result: *res, LevelProgress: res.State.Progress()}, nil
}

func (s *profileService) SpendCoins(ctx context.Context, userID uuid.UUID, amount int) (*SpendResult, error) {
	if amount <= 0 {
		return nil, leveling.ErrInvalidAmount
	}

	ok, err := s.repo.DebitCoins(userID, amount)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to debit coins")
		return nil, util.NewWriteError("spend coins", err)
	}

	p, err := s.repo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &SpendResult{Declined: true, Coins: p.Coins}, leveling.ErrInsufficientCoins
	}
	return &SpendResult{Spent: amount, Coins: p.Coins}, nil
}

func (s *profileService) ToggleChecklist(ctx context.Context, userID uuid.UUID, item ChecklistItem) (*ProfileResponse, error) {
	if !item.IsValid() {
		return nil, &InvalidKeyError{Kind: "checklist item", Key: string(item)}
	}
	today := s.today().String()

	p, err := s.mutate(ctx, userID, "toggle checklist", func(p *Profile) error {
		checklist := p.Checklist.Data()
		if p.ChecklistDate != today || checklist == nil {
			checklist = Checklist{}
		}
		checklist[item] = !checklist[item]
		p.Checklist = datatypes.NewJSONType(checklist)
		p.ChecklistDate = today
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(p), nil
}

func (s *profileService) SetEqualizer(ctx context.Context, userID uuid.UUID, values Equalizer) (*ProfileResponse, error) {
	p, err := s.mutate(ctx, userID, "set equalizer", func(p *Profile) error {
		eq := p.Equalizer.Data()
		if eq == nil {
			eq = Equalizer{}
		}
		for k, v := range values {
			if !k.IsValid() {
				return &InvalidKeyError{Kind: "equalizer channel", Key: string(k)}
			}
			eq[k] = v
		}
		p.Equalizer = datatypes.NewJSONType(eq)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(p), nil
}

func (s *profileService) SetAIKey(ctx context.Context, userID uuid.UUID, apiKey string) error {
	encrypted := ""
	if apiKey != "" {
		enc, err := config.Encrypt(apiKey)
		if err != nil {
			return err
		}
		encrypted = enc
	}
	_, err := s.mutate(ctx, userID, "set ai key", func(p *Profile) error {
		p.EncryptedAIKey = encrypted
		return nil
	})
	return err
}

func (s *profileService) AIKey(ctx context.Context, userID uuid.UUID) (string, error) {
	p, err := s.repo.FindByUserID(userID)
	if err != nil {
		return "", err
	}
	if p.EncryptedAIKey == "" {
		return "", nil
	}
	return config.Decrypt(p.EncryptedAIKey)
}
