package service

import (
	"context"
	"errors"
	"strings"

	"github.com/avolkov/goshop/internal/auth"
	"github.com/avolkov/goshop/internal/model"
	"github.com/avolkov/goshop/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Mailer delivers the signup confirmation mail. Implementations may be a
// no-op when mail is not configured.
type Mailer interface {
	SendConfirmation(to, link string) error
}

// ConfirmStore keeps pending email confirmation tokens.
type ConfirmStore interface {
	Save(ctx context.Context, token string, userID uint64) error
	Resolve(ctx context.Context, token string) (uint64, error)
}

type ProfileInput struct {
	FirstName  string
	SecondName string
	Country    string
	City       string
	Street     string
	Phone      string
}

// PurchaseWithItems pairs a purchase with the items it covered.
type PurchaseWithItems struct {
	Purchase model.Purchase
	Items    []model.Item
}

type UserService interface {
	SignUp(ctx context.Context, email, password string) (*model.User, string, error)
	SignIn(ctx context.Context, email, password string) (*model.User, string, error)
	ConfirmEmail(ctx context.Context, token string) error
	Profile(ctx context.Context, userID uint64) (*model.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uint64, in ProfileInput) (*model.UserProfile, error)
	ChangeEmail(ctx context.Context, userID uint64, email string) (*model.User, error)
	Purchases(ctx context.Context, userID uint64) ([]PurchaseWithItems, error)
}

type userService struct {
	userRepo     repository.UserRepository
	purchaseRepo repository.PurchaseRepository
	tokens       *auth.TokenManager
	confirms     ConfirmStore
	mailer       Mailer
	baseURL      string
}

func NewUserService(
	userRepo repository.UserRepository,
	purchaseRepo repository.PurchaseRepository,
	tokens *auth.TokenManager,
	confirms ConfirmStore,
	mailer Mailer,
	baseURL string,
) UserService {
	return &userService{
		userRepo:     userRepo,
		purchaseRepo: purchaseRepo,
		tokens:       tokens,
		confirms:     confirms,
		mailer:       mailer,
		baseURL:      baseURL,
	}
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}

// SignUp registers an account. The profile is created together with the user,
// and a confirmation link is mailed out of band.
func (s *userService) SignUp(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	fields := map[string]string{}
	if !validEmail(email) {
		fields["email"] = "email is invalid"
	}
	if len(password) < 8 {
		fields["password"] = "must be at least 8 characters"
	}
	if len(fields) > 0 {
		return nil, "", &ValidationError{Fields: fields}
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	user := &model.User{Email: email, PasswordHash: hash}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	s.sendConfirmation(ctx, user)

	token, err := s.tokens.Issue(user.ID, user.IsStaff)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) sendConfirmation(ctx context.Context, user *model.User) {
	confirmToken := uuid.NewString()
	if err := s.confirms.Save(ctx, confirmToken, user.ID); err != nil {
		zap.L().Warn("saving confirmation token failed", zap.Uint64("user_id", user.ID), zap.Error(err))
		return
	}
	link := s.baseURL + "/api/auth/confirm?token=" + confirmToken
	if err := s.mailer.SendConfirmation(user.Email, link); err != nil {
		zap.L().Warn("sending confirmation mail failed", zap.Uint64("user_id", user.ID), zap.Error(err))
	}
}

func (s *userService) SignIn(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.ID, user.IsStaff)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) ConfirmEmail(ctx context.Context, token string) error {
	userID, err := s.confirms.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrUnknownConfirmToken) {
			return ErrNotFound
		}
		return err
	}
	profile, err := s.userRepo.Profile(ctx, userID)
	if err != nil {
		return err
	}
	profile.IsConfirmed = true
	return s.userRepo.SaveProfile(ctx, profile)
}

func (s *userService) Profile(ctx context.Context, userID uint64) (*model.UserProfile, error) {
	profile, err := s.userRepo.Profile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint64, in ProfileInput) (*model.UserProfile, error) {
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.FirstName = strings.TrimSpace(in.FirstName)
	profile.SecondName = strings.TrimSpace(in.SecondName)
	profile.Country = strings.TrimSpace(in.Country)
	profile.City = strings.TrimSpace(in.City)
	profile.Street = strings.TrimSpace(in.Street)
	profile.Phone = strings.TrimSpace(in.Phone)
	if err := s.userRepo.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *userService) ChangeEmail(ctx context.Context, userID uint64, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validEmail(email) {
		return nil, &ValidationError{Fields: map[string]string{"email": "email is invalid"}}
	}
	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing.ID != userID {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	user.Email = email
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Purchases lists the caller's own purchase history, newest first.
func (s *userService) Purchases(ctx context.Context, userID uint64) ([]PurchaseWithItems, error) {
	purchases, err := s.purchaseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]PurchaseWithItems, 0, len(purchases))
	for _, p := range purchases {
		items, err := s.purchaseRepo.ListItems(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, PurchaseWithItems{Purchase: p, Items: items})
	}
	return out, nil
}
