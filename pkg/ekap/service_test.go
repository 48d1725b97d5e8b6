package ekap

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchTenders(t *testing.T) {
	portal, server := newMockPortal(t, map[string]string{
		EndpointTenderSearch: `{"list": [{"id": 1, "ihaleAdi": "A"}, {"id": 2, "ihaleAdi": "B"}], "totalCount": 41}`,
	})
	client := NewClient(WithBaseURL(server.URL))

	params := DefaultTenderSearchParams()
	params.SearchText = "asfalt"
	params.Limit = 500

	result, err := client.SearchTenders(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 2, result.ReturnedCount)
	assert.Equal(t, "41", scalarString(result.TotalCount))

	body := portal.last(t).Body
	assert.Equal(t, "asfalt", body["searchText"])
	assert.EqualValues(t, MaxTenderLimit, body["paginationTake"], "Should clamp the limit before sending")
}

func TestSearchTendersEmptyResult(t *testing.T) {
	_, server := newMockPortal(t, map[string]string{EndpointTenderSearch: `{"list": null, "totalCount": 0}`})
	client := NewClient(WithBaseURL(server.URL))

	result, err := client.SearchTenders(context.Background(), DefaultTenderSearchParams())
	require.NoError(t, err)
	assert.Empty(t, result.Tenders)
	assert.NotNil(t, result.Tenders)
	assert.Equal(t, 0, result.ReturnedCount)
}

func TestSearchOKASCodesFiltersBeforeLimit(t *testing.T) {
	var rows []string
	for i := 0; i < 60; i++ {
		kind := 1
		if i%6 == 0 {
			kind = 2
		}
		rows = append(rows, fmt.Sprintf(`{"id": %d, "kod": "%d", "kalemTuru": %d}`, i, 1000+i, kind))
	}
	portal, server := newMockPortal(t, map[string]string{
		EndpointOKASCodes: `{"loadResult": {"data": [` + strings.Join(rows, ",") + `]}}`,
	})
	client := NewClient(WithBaseURL(server.URL))

	service := 2
	codes, err := client.SearchOKASCodes(context.Background(), "hizmet", &service, 5)
	require.NoError(t, err)
	require.Len(t, codes, 5)
	for _, c := range codes {
		assert.Equal(t, "Hizmet (Service)", c.ItemType.Description)
	}

	body := portal.last(t).Body
	loadOptions := body["loadOptions"].(map[string]any)
	assert.EqualValues(t, 5, loadOptions["take"])
	filter := loadOptions["filter"].(map[string]any)["filter"].([]any)
	assert.Len(t, filter, 3, "Should never send the item type upstream")
}

func TestSearchAuthorities(t *testing.T) {
	portal, server := newMockPortal(t, map[string]string{
		EndpointAuthorities: `{"loadResult": {"data": [{"id": 1, "ad": "Ankara Valiliği"}]}}`,
	})
	client := NewClient(WithBaseURL(server.URL))

	authorities, err := client.SearchAuthorities(context.Background(), "Ankara", 0)
	require.NoError(t, err)
	require.Len(t, authorities, 1)
	assert.Equal(t, "Ankara Valiliği", *authorities[0].Name)

	loadOptions := portal.last(t).Body["loadOptions"].(map[string]any)
	assert.EqualValues(t, 1, loadOptions["take"], "Should clamp limit to at least 1")
}

func TestGetTenderAnnouncements(t *testing.T) {
	portal, server := newMockPortal(t, map[string]string{
		EndpointAnnouncements: `{"list": [
			{"id": 1, "ilanTip": "2", "baslik": "İhale", "ihaleId": 77, "veriHtml": "<p>metin</p>"},
			{"id": 2, "ilanTip": "4", "baslik": "Sonuç", "ihaleId": 77, "istekliAdi": "ABC Ltd"}
		]}`,
	})
	client := NewClient(WithBaseURL(server.URL))

	list, err := client.GetTenderAnnouncements(context.Background(), 77)
	require.NoError(t, err)
	assert.Equal(t, 2, list.TotalCount)
	assert.Equal(t, int64(77), list.TenderID)
	assert.Equal(t, []string{"İhale İlanı", "Sonuç İlanı"}, list.TypesFound)
	require.NotNil(t, list.Announcements[1].AnnouncementLinks)
	assert.Equal(t, "ABC Ltd", *list.Announcements[1].BidderName)

	assert.EqualValues(t, 77, portal.last(t).Body["ihaleId"])
}

func TestGetTenderDetails(t *testing.T) {
	portal, server := newMockPortal(t, map[string]string{
		EndpointTenderDetail: `{"item": ` + fmt.Sprintf(detailFixture, "null") + `}`,
	})
	client := NewClient(WithBaseURL(server.URL))

	detail, err := client.GetTenderDetails(context.Background(), 1234567)
	require.NoError(t, err)
	assert.Equal(t, "Bilgisayar Alımı", *detail.Name)
	assert.Equal(t, "1234567", scalarString(detail.TenderID))
	assert.Equal(t, "1234567", portal.last(t).Body["ihaleId"], "Should send the id as a string")
}

func TestGetTenderDetailsNotFound(t *testing.T) {
	testCases := []struct {
		name   string
		answer string
	}{
		{name: "empty object", answer: `{"item": {}}`},
		{name: "null item", answer: `{"item": null}`},
		{name: "missing item", answer: `{}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, server := newMockPortal(t, map[string]string{EndpointTenderDetail: tc.answer})
			client := NewClient(WithBaseURL(server.URL))

			_, err := client.GetTenderDetails(context.Background(), 5)
			assert.True(t, errors.Is(err, ErrTenderNotFound))
		})
	}
}
