package cards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vkarpenko/valentine/internal/common"
	"github.com/vkarpenko/valentine/internal/idgen"
	"github.com/vkarpenko/valentine/internal/logging"
)

// newID is a seam for testing identifier generation.
var newID = idgen.New

// timeNow is a seam for testing createdAt stamping.
var timeNow = time.Now

// Uploader stores a photo under key and returns its public URL.
// Satisfied by blob.Client.
type Uploader interface {
	Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}

// Photo is one uploaded image part of a creation request.
type Photo struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// CreateRequest carries the creator's form input. Message maps to the card's
// love letter. Empty optional fields mean "not supplied".
type CreateRequest struct {
	SenderName    string
	RecipientName string
	Message       string
	ShortNote     string
	StampType     string
	Photo1        *Photo
	Photo1Caption string
	Photo2        *Photo
	Photo2Caption string
	FlowerMsgs    [4]string
}

// CreateResult is returned on successful creation.
type CreateResult struct {
	ID  string
	URL string
}

// Service implements the creation pipeline and retrieval on top of a
// Repository and an Uploader.
type Service struct {
	repo     Repository
	uploader Uploader
	logger   logging.Logger
	baseURL  string
	timeout  time.Duration
}

// NewService wires the card service. baseURL is the public address shareable
// links are built from; timeout bounds each outbound storage call.
func NewService(repo Repository, uploader Uploader, logger logging.Logger, baseURL string, timeout time.Duration) *Service {
	return &Service{
		repo:     repo,
		uploader: uploader,
		logger:   logger,
		baseURL:  strings.TrimRight(baseURL, "/"),
		timeout:  timeout,
	}
}

var validStamps = map[string]struct{}{
	StampCatsLove:    {},
	StampCatsBouquet: {},
	StampCatLetter:   {},
}

// Create runs the creation pipeline: validate, generate an id, upload photos
// best-effort, compose the record with defaults, insert, and build the
// shareable URL.
//
// Validation failures abort before any side effect. A photo upload failure
// degrades to a missing photo. A duplicate id at insert time triggers exactly
// one regenerate-and-retry; any further persistence failure surfaces as
// common.ErrStorage (already-uploaded photo objects are left in place).
func (s *Service) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {

	log := s.logger.With("request_id", uuid.NewString())

	senderName := strings.TrimSpace(req.SenderName)
	recipientName := strings.TrimSpace(req.RecipientName)
	message := strings.TrimSpace(req.Message)

	if senderName == "" || recipientName == "" || message == "" {
		return nil, common.ErrValidation
	}

	id, err := newID()
	if err != nil {
		return nil, fmt.Errorf("generating id: %w", err)
	}

	photo1URL := s.uploadPhoto(ctx, log, id, 1, req.Photo1)
	photo2URL := s.uploadPhoto(ctx, log, id, 2, req.Photo2)

	card := &Card{
		ID:            id,
		RecipientName: recipientName,
		SenderName:    senderName,
		ProposalText:  fmt.Sprintf("%s, will you be my valentine?", recipientName),
		LoveLetter:    message,
		ShortNote:     nullable(req.ShortNote),
		Photo1URL:     nullable(photo1URL),
		Photo1Caption: nullable(req.Photo1Caption),
		Photo2URL:     nullable(photo2URL),
		Photo2Caption: nullable(req.Photo2Caption),
		StampType:     normalizeStamp(req.StampType),
		CreatedAt:     timeNow().UTC(),
		ViewCount:     0,
	}

	card.FlowerMsg1 = flowerOrDefault(req.FlowerMsgs[0], 0)
	card.FlowerMsg2 = flowerOrDefault(req.FlowerMsgs[1], 1)
	card.FlowerMsg3 = flowerOrDefault(req.FlowerMsgs[2], 2)
	card.FlowerMsg4 = flowerOrDefault(req.FlowerMsgs[3], 3)

	if err := s.insertWithRetry(ctx, log, card); err != nil {
		return nil, err
	}

	log.Info(ctx, "card created", "card_id", card.ID)

	return &CreateResult{
		ID:  card.ID,
		URL: fmt.Sprintf("%s/card/%s", s.baseURL, card.ID),
	}, nil
}

// Get returns the card for id and bumps its view counter. The counter update
// is secondary to serving the card: its failure is logged, never surfaced.
func (s *Service) Get(ctx context.Context, id string) (*Card, error) {

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	card, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementViewCount(ctx, id); err != nil {
		s.logger.Warn(ctx, "view count update failed", "card_id", id, "error", err.Error())
	}

	return card, nil
}

// uploadPhoto tries to store one photo and returns its public URL, or "" when
// the photo is absent or the upload failed.
func (s *Service) uploadPhoto(ctx context.Context, log logging.Logger, cardID string, slot int, p *Photo) string {
	if p == nil {
		return ""
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(p.FileName)), ".")
	if ext == "" {
		ext = "bin"
	}
	key := fmt.Sprintf("%s/photo%d.%s", cardID, slot, ext)

	uctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	url, err := s.uploader.Upload(uctx, key, p.ContentType, p.Body)
	if err != nil {
		log.Warn(ctx, "photo upload failed", "card_id", cardID, "slot", slot, "error", err.Error())
		return ""
	}

	return url
}

// insertWithRetry performs the record insert, regenerating the identifier
// exactly once if the first one collides.
func (s *Service) insertWithRetry(ctx context.Context, log logging.Logger, card *Card) error {

	ictx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.repo.Insert(ictx, card)
	if err == nil {
		return nil
	}

	if !errors.Is(err, common.ErrDuplicateID) {
		log.Error(ctx, "card insert failed", "card_id", card.ID, "error", err.Error())
		return common.ErrStorage
	}

	log.Warn(ctx, "duplicate card id, regenerating", "card_id", card.ID)

	id, err := newID()
	if err != nil {
		return fmt.Errorf("regenerating id: %w", err)
	}
	card.ID = id

	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.repo.Insert(rctx, card); err != nil {
		log.Error(ctx, "card insert retry failed", "card_id", card.ID, "error", err.Error())
		return common.ErrStorage
	}

	return nil
}

func nullable(s string) (ns sql.NullString) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	ns.String = s
	ns.Valid = true
	return
}

func flowerOrDefault(override string, i int) string {
	if v := strings.TrimSpace(override); v != "" {
		return v
	}
	return DefaultFlowerMessages[i]
}

func normalizeStamp(s string) string {
	if _, ok := validStamps[s]; ok {
		return s
	}
	return DefaultStamp
}
