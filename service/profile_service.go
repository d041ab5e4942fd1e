package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/layer-3/dropregards/core"
	"github.com/layer-3/dropregards/ports"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)

const avatarBaseURL = "https://ui-avatars.com/api/"

// ProfileService manages the profiles registered against wallets
type ProfileService struct {
	profiles ports.ProfileStore
	logger   *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(profiles ports.ProfileStore, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		profiles: profiles,
		logger:   logger,
	}
}

// NewProfile is the input for creating a profile
type NewProfile struct {
	Username     string
	DisplayName  *string
	Bio          string
	ProfileImage string
}

// ValidUsername reports whether username may be registered
func ValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// CheckUsername reports whether username is free
func (s *ProfileService) CheckUsername(ctx context.Context, username string) (bool, error) {
	if username == "" {
		return false, fmt.Errorf("%w: username parameter is required", core.ErrValidation)
	}

	exists, err := s.profiles.UsernameExists(ctx, username)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}

	return !exists, nil
}

// Create registers a profile for address
func (s *ProfileService) Create(ctx context.Context, address string, in NewProfile) (*core.Profile, error) {
	if in.Username == "" {
		return nil, fmt.Errorf("%w: username is required", core.ErrValidation)
	}
	if !ValidUsername(in.Username) {
		return nil, fmt.Errorf("%w: invalid username format", core.ErrValidation)
	}

	if _, err := s.profiles.FindByUsername(ctx, in.Username); err == nil {
		return nil, fmt.Errorf("%w: username is already taken", core.ErrConflict)
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}

	if _, err := s.profiles.FindByWallet(ctx, address); err == nil {
		return nil, fmt.Errorf("%w: user already has a profile", core.ErrConflict)
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	displayName := in.Username
	if in.DisplayName != nil {
		displayName = *in.DisplayName
	}

	profile := &core.Profile{
		ID:            uuid.New().String(),
		WalletAddress: address,
		Username:      in.Username,
		DisplayName:   displayName,
		Bio:           in.Bio,
		ProfileImage:  in.ProfileImage,
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("profile created",
		zap.String("address", address),
		zap.String("username", profile.Username),
	)

	return profile, nil
}

// Get returns the profile of address with a placeholder image when it has none
func (s *ProfileService) Get(ctx context.Context, address string) (*core.Profile, error) {
	profile, err := s.profiles.FindByWallet(ctx, address)
	if err != nil {
		return nil, err
	}
	withAvatar(profile)
	return profile, nil
}

// Update changes the given fields of the profile of address
func (s *ProfileService) Update(ctx context.Context, address string, update core.ProfileUpdate) (*core.Profile, error) {
	if update.Empty() {
		return s.profiles.FindByWallet(ctx, address)
	}
	return s.profiles.Update(ctx, address, update)
}

// GetPublic returns the profile registered under username
func (s *ProfileService) GetPublic(ctx context.Context, username string) (*core.Profile, error) {
	profile, err := s.profiles.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	withAvatar(profile)
	return profile, nil
}

func withAvatar(p *core.Profile) {
	if p.ProfileImage == "" {
		p.ProfileImage = PlaceholderImage(p.Username)
	}
}

// PlaceholderImage returns an initials avatar URL whose background colour is
// derived from username
func PlaceholderImage(username string) string {
	if username == "" {
		username = "user"
	}

	sum := md5.Sum([]byte(username))
	initials := []rune(username)
	if len(initials) > 2 {
		initials = initials[:2]
	}

	params := []string{
		"name=" + url.QueryEscape(strings.ToUpper(string(initials))),
		"background=" + hex.EncodeToString(sum[:])[:6],
		"color=ffffff",
		"size=256",
		"bold=true",
		"format=png",
	}

	return avatarBaseURL + "?" + strings.Join(params, "&")
}
