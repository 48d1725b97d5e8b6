package ekap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// SearchTenders runs a tender search. A zero total count is a valid, empty result.
func (c *Client) SearchTenders(ctx context.Context, params TenderSearchParams) (*TenderSearchResult, error) {
	params.Limit = Clamp(params.Limit, 1, MaxTenderLimit)
	if params.Skip < 0 {
		params.Skip = 0
	}

	var resp TenderListResponse
	if err := c.Post(ctx, EndpointTenderSearch, BuildTenderSearchRequest(params), &resp); err != nil {
		return nil, err
	}

	result := NormalizeTenders(&resp)
	c.logger.Debug("Tender search finished",
		slog.Int("returned", result.ReturnedCount),
		slog.String("total", scalarString(result.TotalCount)))
	return result, nil
}

// SearchOKASCodes searches the OKAS classification. itemType (1 goods,
// 2 service, 3 construction) is applied locally before truncating to limit.
func (c *Client) SearchOKASCodes(ctx context.Context, searchTerm string, itemType *int, limit int) ([]OKASCode, error) {
	limit = Clamp(limit, 1, MaxLookupLimit)

	var resp LoadResultResponse[OKASItem]
	if err := c.Post(ctx, EndpointOKASCodes, BuildOKASSearchRequest(searchTerm, limit), &resp); err != nil {
		return nil, err
	}
	return NormalizeOKASCodes(resp.LoadResult.Data, itemType, limit), nil
}

// SearchAuthorities searches the DETSIS authority tree by name.
func (c *Client) SearchAuthorities(ctx context.Context, searchTerm string, limit int) ([]Authority, error) {
	limit = Clamp(limit, 1, MaxLookupLimit)

	var resp LoadResultResponse[AuthorityItem]
	if err := c.Post(ctx, EndpointAuthorities, BuildAuthoritySearchRequest(searchTerm, limit), &resp); err != nil {
		return nil, err
	}
	return NormalizeAuthorities(resp.LoadResult.Data), nil
}

// GetTenderAnnouncements fetches every announcement of a tender with its
// HTML rendered to markdown and a plain text preview.
func (c *Client) GetTenderAnnouncements(ctx context.Context, tenderID int64) (*AnnouncementList, error) {
	var resp AnnouncementListResponse
	if err := c.Post(ctx, EndpointAnnouncements, BuildAnnouncementsRequest(tenderID), &resp); err != nil {
		return nil, err
	}

	announcements := c.html.NormalizeAnnouncements(resp.List, true)
	return &AnnouncementList{
		Announcements: announcements,
		TotalCount:    len(announcements),
		TenderID:      tenderID,
		TypesFound:    AnnouncementTypesFound(announcements),
	}, nil
}

// GetTenderDetails fetches the full record of a tender. It returns
// ErrTenderNotFound when the portal answers with an empty item.
func (c *Client) GetTenderDetails(ctx context.Context, tenderID int64) (*TenderDetail, error) {
	var resp struct {
		Item json.RawMessage `json:"item"`
	}
	if err := c.Post(ctx, EndpointTenderDetail, BuildTenderDetailRequest(tenderID), &resp); err != nil {
		return nil, err
	}

	raw := bytes.TrimSpace(resp.Item)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte("{}")) {
		return nil, ErrTenderNotFound
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var item TenderDetailItem
	if err := dec.Decode(&item); err != nil {
		return nil, &RequestError{Endpoint: EndpointTenderDetail, Err: fmt.Errorf("failed to decode tender item: %w", err)}
	}
	return c.html.NormalizeTenderDetail(&item), nil
}
