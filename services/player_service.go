package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/playerz/playerz-api/models"
	"github.com/playerz/playerz-api/repositories"
	"github.com/playerz/playerz-api/storage"
)

var allowedAvatarTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id int) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int) (*models.Player, error)
	UploadAvatar(ctx context.Context, id int, file io.Reader, filename, contentType string) (*models.Player, error)
}

type CreatePlayerInput struct {
	Pseudo     string  `json:"pseudo"`
	HaveAvatar bool    `json:"have_avatar"`
	AvatarURL  *string `json:"avatar_url"`
}

type UpdatePlayerInput struct {
	Pseudo     *string `json:"pseudo"`
	HaveAvatar *bool   `json:"have_avatar"`
	AvatarURL  *string `json:"avatar_url"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	logger     *slog.Logger
}

// NewPlayerService builds the player service. uploader may be nil when object storage is off.
func NewPlayerService(playerRepo repositories.PlayerRepository, uploader storage.FileUploader, logger *slog.Logger) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		uploader:   uploader,
		logger:     logger,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	pseudo := strings.TrimSpace(input.Pseudo)
	if pseudo == "" {
		return nil, invalidArgument("pseudo is required")
	}

	player := &models.Player{
		Pseudo:     pseudo,
		HaveAvatar: input.HaveAvatar,
		AvatarURL:  input.AvatarURL,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, normalizeRepositoryError(err)
	}
	return player, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	return s.playerRepo.GetByID(ctx, id)
}

func (s *playerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	return s.playerRepo.List(ctx)
}

func (s *playerService) UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error) {
	patch := repositories.PlayerPatch{
		HaveAvatar: input.HaveAvatar,
		AvatarURL:  input.AvatarURL,
	}
	if input.Pseudo != nil {
		pseudo := strings.TrimSpace(*input.Pseudo)
		if pseudo == "" {
			return nil, invalidArgument("pseudo must not be empty")
		}
		patch.Pseudo = &pseudo
	}

	player, err := s.playerRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, normalizeRepositoryError(err)
	}
	return player, nil
}

// DeletePlayer removes the player and, when present, its stored avatar.
// The avatar object is removed on a best-effort basis.
func (s *playerService) DeletePlayer(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.Delete(ctx, id)
	if err != nil {
		return nil, normalizeRepositoryError(err)
	}
	if player.AvatarKey != nil {
		s.deleteObject(ctx, *player.AvatarKey)
	}
	return player, nil
}

func (s *playerService) UploadAvatar(ctx context.Context, id int, file io.Reader, filename, contentType string) (*models.Player, error) {
	if s.uploader == nil {
		return nil, ErrStorageDisabled
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, invalidArgument(fmt.Sprintf("invalid content type %q", contentType))
	}
	ext, ok := allowedAvatarTypes[mediaType]
	if !ok {
		return nil, invalidArgument(fmt.Sprintf("unsupported avatar type %q", mediaType))
	}
	if fileExt := strings.ToLower(path.Ext(filename)); fileExt != "" {
		if exts, _ := mime.ExtensionsByType(mediaType); containsString(exts, fileExt) {
			ext = fileExt
		}
	}

	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := avatarKey(player, ext)
	result, err := s.uploader.Upload(ctx, key, mediaType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar for player %d: %w", id, err)
	}

	haveAvatar := true
	location := result.Location
	updated, err := s.playerRepo.Update(ctx, id, repositories.PlayerPatch{
		HaveAvatar: &haveAvatar,
		AvatarURL:  &location,
		AvatarKey:  &result.Key,
	})
	if err != nil {
		// новый объект никому не принадлежит
		s.deleteObject(ctx, result.Key)
		return nil, normalizeRepositoryError(err)
	}

	if player.AvatarKey != nil && *player.AvatarKey != result.Key {
		s.deleteObject(ctx, *player.AvatarKey)
	}
	return updated, nil
}

func (s *playerService) deleteObject(ctx context.Context, key string) {
	if s.uploader == nil || key == "" {
		return
	}
	if err := s.uploader.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete avatar object", slog.String("key", key), slog.Any("error", err))
	}
}

// avatarKey builds "players/{id}/{slug}-{uuid}{ext}".
func avatarKey(p *models.Player, ext string) string {
	name := slug.Make(p.Pseudo)
	if name == "" {
		name = "avatar"
	}
	return fmt.Sprintf("players/%d/%s-%s%s", p.ID, name, uuid.NewString(), ext)
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
