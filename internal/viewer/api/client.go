// Package api is the viewer's HTTP client for the card service.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vkarpenko/valentine/internal/common"
)

// CardView is the card record as served by the retrieval endpoint.
type CardView struct {
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

// Client fetches cards from a card service instance.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client for the service at baseURL. timeout bounds each
// request.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// GetCard fetches the card with the given id. An unknown id maps to
// common.ErrNotFound.
func (c *Client) GetCard(ctx context.Context, id string) (*CardView, error) {

	url := fmt.Sprintf("%s/valentines/%s", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching card: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, common.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status %d fetching card", resp.StatusCode)
	}

	view := &CardView{}
	if err := json.NewDecoder(resp.Body).Decode(view); err != nil {
		return nil, fmt.Errorf("decoding card: %w", err)
	}

	return view, nil
}
