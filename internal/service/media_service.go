package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/LucasFJU/portfolio-flow-ai/internal/logger"
	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
	"github.com/LucasFJU/portfolio-flow-ai/internal/pkg/apperror"
	"github.com/LucasFJU/portfolio-flow-ai/internal/storage"
)

// MediaRepo описывает зависимости MediaService от слоя хранилища.
type MediaRepo interface {
	Create(ctx context.Context, media *models.MediaFile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MediaFile, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.MediaFile, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

// MediaService отвечает за загрузку изображений: файл на диске плюс
// запись в media_files с метаданными.
type MediaService struct {
	repo    MediaRepo
	storage *storage.PhotoStorage
}

// NewMediaService создаёт сервис загрузок.
func NewMediaService(repo MediaRepo, photoStorage *storage.PhotoStorage) *MediaService {
	return &MediaService{repo: repo, storage: photoStorage}
}

// Upload сохраняет изображение и возвращает запись о нём.
// Тип файла определяется по содержимому, не по расширению.
func (s *MediaService) Upload(ctx context.Context, userID uuid.UUID, originalName string, r io.Reader) (*models.MediaFile, error) {
	relativePath, mimeType, size, err := s.storage.Save(ctx, userID, originalName, r)
	if err != nil {
		return nil, err
	}

	media := &models.MediaFile{
		UserID:   userID,
		FilePath: relativePath,
		FileType: mimeType,
		FileSize: size,
		IsPublic: true,
	}

	if err := s.repo.Create(ctx, media); err != nil {
		// Файл без записи в базе никому не виден, убираем его сразу.
		if removeErr := s.storage.Delete(ctx, relativePath); removeErr != nil {
			logger.Log.Warnf("не удалось удалить осиротевший файл %s: %v", relativePath, removeErr)
		}
		return nil, err
	}

	return media, nil
}

// List возвращает загрузки пользователя.
func (s *MediaService) List(ctx context.Context, userID uuid.UUID) ([]models.MediaFile, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Delete удаляет запись и файл с диска.
func (s *MediaService) Delete(ctx context.Context, userID, mediaID uuid.UUID) error {
	media, err := s.repo.GetByID(ctx, mediaID)
	if err != nil {
		return err
	}
	if media.UserID != userID {
		return apperror.ErrForbidden
	}

	if err := s.repo.Delete(ctx, mediaID, userID); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, media.FilePath); err != nil {
		logger.Log.Warnf("запись удалена, но файл %s остался: %v", media.FilePath, err)
	}

	return nil
}
