package integration

import (
	"context"
	"testing"
	"time"

	"github.com/ihale-mcp/ihale-mcp/pkg/ekap"
)

func TestEKAPIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	client := ekap.NewClient(ekap.WithTimeout(30 * time.Second))
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	var tenderID int64

	t.Run("SearchTenders", func(t *testing.T) {
		params := ekap.DefaultTenderSearchParams()
		params.TenderTypes = []int{1}
		params.Limit = 5

		result, err := client.SearchTenders(ctx, params)
		if err != nil {
			t.Fatalf("Tender search failed: %v", err)
		}
		if len(result.Tenders) == 0 {
			t.Fatal("Expected at least one tender")
		}
		if result.ReturnedCount > 5 {
			t.Errorf("Expected at most 5 tenders, got %d", result.ReturnedCount)
		}

		first := result.Tenders[0]
		if first.EKAPURL == "" {
			t.Error("Tender should have a portal link")
		}
		if first.Name == nil {
			t.Error("Tender should have a name")
		}
		if id, ok := first.ID.(interface{ Int64() (int64, error) }); ok {
			tenderID, _ = id.Int64()
		}

		t.Logf("Successfully retrieved %d of %v tenders", result.ReturnedCount, result.TotalCount)
	})

	t.Run("SearchOKASCodes", func(t *testing.T) {
		codes, err := client.SearchOKASCodes(ctx, "bilgisayar", nil, 10)
		if err != nil {
			t.Fatalf("OKAS search failed: %v", err)
		}
		if len(codes) == 0 {
			t.Fatal("Expected at least one OKAS code")
		}
		t.Logf("Successfully retrieved %d OKAS codes", len(codes))
	})

	t.Run("SearchAuthorities", func(t *testing.T) {
		authorities, err := client.SearchAuthorities(ctx, "Ankara", 10)
		if err != nil {
			t.Fatalf("Authority search failed: %v", err)
		}
		if len(authorities) == 0 {
			t.Fatal("Expected at least one authority")
		}
		t.Logf("Successfully retrieved %d authorities", len(authorities))
	})

	t.Run("GetTenderAnnouncements", func(t *testing.T) {
		if tenderID == 0 {
			t.Skip("No tender id from the search")
		}
		announcements, err := client.GetTenderAnnouncements(ctx, tenderID)
		if err != nil {
			t.Fatalf("Announcement lookup failed: %v", err)
		}
		if announcements.TenderID != tenderID {
			t.Errorf("Expected tender id %d, got %d", tenderID, announcements.TenderID)
		}
		t.Logf("Tender %d has %d announcements", tenderID, announcements.TotalCount)
	})

	t.Run("GetTenderDetails", func(t *testing.T) {
		if tenderID == 0 {
			t.Skip("No tender id from the search")
		}
		detail, err := client.GetTenderDetails(ctx, tenderID)
		if err != nil {
			t.Fatalf("Detail lookup failed: %v", err)
		}
		if detail.IKN == nil {
			t.Error("Tender details should carry an IKN")
		}
		t.Logf("Tender %d has %d OKAS codes", tenderID, len(detail.OKASCodes))
	})
}
