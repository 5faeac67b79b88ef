package http

import (
	"database/sql"
	"errors"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vkarpenko/valentine/internal/common"
	"github.com/vkarpenko/valentine/internal/server/cards"
)

// cardResponse is the client-facing shape of a card record.
type cardResponse struct {
	ID            string  `json:"id"`
	RecipientName string  `json:"recipientName"`
	SenderName    string  `json:"senderName"`
	ProposalText  string  `json:"proposalText"`
	LoveLetter    string  `json:"loveLetter"`
	ShortNote     *string `json:"shortNote"`
	Photo1URL     *string `json:"photo1Url"`
	Photo1Caption *string `json:"photo1Caption"`
	Photo2URL     *string `json:"photo2Url"`
	Photo2Caption *string `json:"photo2Caption"`
	FlowerMsg1    string  `json:"flowerMsg1"`
	FlowerMsg2    string  `json:"flowerMsg2"`
	FlowerMsg3    string  `json:"flowerMsg3"`
	FlowerMsg4    string  `json:"flowerMsg4"`
	StampType     string  `json:"stampType"`
	CreatedAt     string  `json:"createdAt"`
	ViewCount     int64   `json:"viewCount"`
}

func (s *Server) handleCreate(c *fiber.Ctx) error {
	ctx := c.UserContext()

	req := cards.CreateRequest{
		SenderName:    c.FormValue("senderName"),
		RecipientName: c.FormValue("recipientName"),
		Message:       c.FormValue("message"),
		ShortNote:     c.FormValue("shortNote"),
		StampType:     c.FormValue("stampType"),
		Photo1Caption: c.FormValue("photo1Caption"),
		Photo2Caption: c.FormValue("photo2Caption"),
		FlowerMsgs: [4]string{
			c.FormValue("flower_msg_1"),
			c.FormValue("flower_msg_2"),
			c.FormValue("flower_msg_3"),
			c.FormValue("flower_msg_4"),
		},
	}

	var closers []multipart.File
	defer func() {
		for _, f := range closers {
			_ = f.Close()
		}
	}()

	for slot, dst := range map[string]**cards.Photo{"photo1": &req.Photo1, "photo2": &req.Photo2} {
		fh, err := c.FormFile(slot)
		if err != nil || fh == nil || fh.Size == 0 {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			s.log.Warn(ctx, "cannot open uploaded photo", "slot", slot, "error", err.Error())
			continue
		}
		closers = append(closers, f)
		*dst = &cards.Photo{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		}
	}

	res, err := s.service.Create(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
		case errors.Is(err, common.ErrStorage):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create valentine"})
		default:
			s.log.Error(ctx, "create failed", "error", err.Error())
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"id":      res.ID,
		"url":     res.URL,
		"message": "Valentine created successfully!",
	})
}

func (s *Server) handleGet(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")

	card, err := s.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Valentine not found"})
		}
		s.log.Error(ctx, "retrieval failed", "card_id", id, "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.JSON(toCardResponse(card))
}

func toCardResponse(card *cards.Card) cardResponse {
	return cardResponse{
		ID:            card.ID,
		RecipientName: card.RecipientName,
		SenderName:    card.SenderName,
		ProposalText:  card.ProposalText,
		LoveLetter:    card.LoveLetter,
		ShortNote:     nullableString(card.ShortNote),
		Photo1URL:     nullableString(card.Photo1URL),
		Photo1Caption: nullableString(card.Photo1Caption),
		Photo2URL:     nullableString(card.Photo2URL),
		Photo2Caption: nullableString(card.Photo2Caption),
		FlowerMsg1:    card.FlowerMsg1,
		FlowerMsg2:    card.FlowerMsg2,
		FlowerMsg3:    card.FlowerMsg3,
		FlowerMsg4:    card.FlowerMsg4,
		StampType:     card.StampType,
		CreatedAt:     card.CreatedAt.Format(time.RFC3339),
		ViewCount:     card.ViewCount,
	}
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
