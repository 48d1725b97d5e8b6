package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ihale-mcp/ihale-mcp/pkg/common"
	"github.com/ihale-mcp/ihale-mcp/pkg/ekap"
)

const (
	defaultRecentDays  = 7
	defaultRecentLimit = 20
)

// tenderFlagArgs maps the optional boolean filters of search_tenders onto the request flags.
var tenderFlagArgs = []struct {
	name        string
	description string
	field       func(*ekap.TenderFlags) **bool
}{
	{"e_ihale", "Filter for electronic tenders (e-İhale)", func(f *ekap.TenderFlags) **bool { return &f.EIhale }},
	{"e_eksiltme_yapilacak_mi", "Filter for electronic auctions (Elektronik eksiltme yapılacak mı)", func(f *ekap.TenderFlags) **bool { return &f.EEksiltmeYapilacakMi }},
	{"ortak_alim_mi", "Filter for joint procurement (Ortak alım mı)", func(f *ekap.TenderFlags) **bool { return &f.OrtakAlimMi }},
	{"kismi_teklif_mi", "Filter for partial proposals (Kısmi teklif verilebilir mi)", func(f *ekap.TenderFlags) **bool { return &f.KismiTeklifMi }},
	{"fiyat_disi_unsur_varmi", "Filter for non-price factors (Fiyat dışı unsur var mı)", func(f *ekap.TenderFlags) **bool { return &f.FiyatDisiUnsurVarmi }},
	{"ekonomik_mali_yeterlilik_belgeleri_isteniyor_mu", "Filter for economic/financial qualification documents required", func(f *ekap.TenderFlags) **bool { return &f.EkonomikMaliYeterlilikIsteniyor }},
	{"mesleki_teknik_yeterlilik_belgeleri_isteniyor_mu", "Filter for professional/technical qualification documents required", func(f *ekap.TenderFlags) **bool { return &f.MeslekiTeknikYeterlilikIsteniyor }},
	{"is_deneyimi_gosteren_belgeler_isteniyor_mu", "Filter for work experience documents required", func(f *ekap.TenderFlags) **bool { return &f.IsDeneyimiBelgeleriIsteniyor }},
	{"yerli_istekliye_fiyat_avantaji_uygulaniyor_mu", "Filter for domestic bidder price advantage applied", func(f *ekap.TenderFlags) **bool { return &f.YerliIstekliyeFiyatAvantaji }},
	{"yabanci_isteklilere_izin_veriliyor_mu", "Filter for foreign bidders allowed", func(f *ekap.TenderFlags) **bool { return &f.YabanciIsteklilereIzin }},
	{"alternatif_teklif_verilebilir_mi", "Filter for alternative proposals allowed", func(f *ekap.TenderFlags) **bool { return &f.AlternatifTeklifVerilebilirMi }},
	{"konsorsiyum_katilabilir_mi", "Filter for consortium participation allowed", func(f *ekap.TenderFlags) **bool { return &f.KonsorsiyumKatilabilirMi }},
	{"alt_yuklenici_calistirilabilir_mi", "Filter for subcontractor employment allowed", func(f *ekap.TenderFlags) **bool { return &f.AltYukleniciCalistirilabilirMi }},
	{"fiyat_farki_verilecek_mi", "Filter for price difference to be given", func(f *ekap.TenderFlags) **bool { return &f.FiyatFarkiVerilecekMi }},
	{"avans_verilecek_mi", "Filter for advance payment to be given", func(f *ekap.TenderFlags) **bool { return &f.AvansVerilecekMi }},
	{"cerceve_anlasmasi_mi", "Filter for framework agreements", func(f *ekap.TenderFlags) **bool { return &f.CerceveAnlasmaMi }},
	{"personel_calistirilmasina_dayali_mi", "Filter for personnel employment based tenders", func(f *ekap.TenderFlags) **bool { return &f.PersonelCalistirilmasinaDayaliMi }},
}

// searchScopeArgs maps the search_in_* arguments onto the search scope.
var searchScopeArgs = []struct {
	name        string
	description string
	field       func(*ekap.SearchScope) *bool
}{
	{"search_in_ikn", "Search in IKN (tender reference number)", func(s *ekap.SearchScope) *bool { return &s.IKN }},
	{"search_in_title", "Search in tender title", func(s *ekap.SearchScope) *bool { return &s.Title }},
	{"search_in_announcement", "Search in tender announcement", func(s *ekap.SearchScope) *bool { return &s.Announcement }},
	{"search_in_tech_spec", "Search in technical specifications", func(s *ekap.SearchScope) *bool { return &s.TechSpec }},
	{"search_in_admin_spec", "Search in administrative specifications", func(s *ekap.SearchScope) *bool { return &s.AdminSpec }},
	{"search_in_similar_work", "Search in similar work clause", func(s *ekap.SearchScope) *bool { return &s.SimilarWork }},
	{"search_in_location", "Search in work location clause", func(s *ekap.SearchScope) *bool { return &s.Location }},
	{"search_in_nature_quantity", "Search in nature/quantity clause", func(s *ekap.SearchScope) *bool { return &s.NatureQuantity }},
	{"search_in_tender_info", "Search in tender information", func(s *ekap.SearchScope) *bool { return &s.TenderInfo }},
	{"search_in_contract_draft", "Search in contract draft", func(s *ekap.SearchScope) *bool { return &s.ContractDraft }},
	{"search_in_bid_form", "Search in bid form", func(s *ekap.SearchScope) *bool { return &s.BidForm }},
}

func schemaProperty(kind, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        kind,
		"description": description,
	}
}

func schemaArray(itemKind, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": itemKind},
		"description": description,
	}
}

func (s *IhaleServer) registerTools() {
	s.server.AddTools(s.toolDefinitions()...)
}

func (s *IhaleServer) toolDefinitions() []server.ServerTool {
	searchProperties := map[string]interface{}{
		"search_text":             schemaProperty("string", "Text to search for in tender titles, descriptions, and specifications."),
		"ikn_year":                schemaProperty("integer", "IKN year (e.g., 2025). The IKN is the official tender reference number in YEAR/NUMBER form."),
		"ikn_number":              schemaProperty("integer", "IKN sequence number."),
		"tender_types":            schemaArray("integer", "Tender types: 1=Mal (Goods), 2=Yapım (Construction), 3=Hizmet (Service), 4=Danışmanlık (Consultancy)."),
		"tender_date_start":       schemaProperty("string", "Start date for tender dates (YYYY-MM-DD format)."),
		"tender_date_end":         schemaProperty("string", "End date for tender dates (YYYY-MM-DD format)."),
		"announcement_date_start": schemaProperty("string", "Start date for announcement dates (YYYY-MM-DD format)."),
		"announcement_date_end":   schemaProperty("string", "End date for announcement dates (YYYY-MM-DD format)."),
		"announcement_date_filter": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"today", "date_range"},
			"description": "Announcement date shortcut: 'today' restricts announcements to today and overrides the announcement dates.",
		},
		"tender_date_filter": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"from_today", "date_range"},
			"description": "Tender date shortcut: 'from_today' returns tenders from today on and clears tender_date_end.",
		},
		"search_type": map[string]interface{}{
			"type":        "string",
			"enum":        []string{ekap.SearchTypeExact, ekap.SearchTypeAllWords},
			"description": "Search type: GirdigimGibi=exact match (default), TumKelimeler=all words.",
		},
		"order_by": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"ihaleTarihi", "ihaleAdi", "idareAdi"},
			"description": "Order results by: ihaleTarihi=date (default), ihaleAdi=name, idareAdi=authority.",
		},
		"sort_order": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"asc", "desc"},
			"description": "Sort order (default: desc).",
		},
		"provinces":          schemaArray("integer", "Province plate numbers to filter by (1-81, e.g., 6=Ankara, 34=İstanbul, 35=İzmir). Unknown plates are ignored."),
		"tender_statuses":    schemaArray("integer", "Tender status IDs to filter by. See get_reference_codes."),
		"tender_methods":     schemaArray("integer", "Tender method IDs to filter by."),
		"tender_sub_methods": schemaArray("integer", "Tender sub-method IDs to filter by."),
		"okas_codes":         schemaArray("string", "OKAS classification codes to filter by. Find codes with search_okas_codes."),
		"authority_ids":      schemaArray("integer", "Authority/institution IDs to filter by. Find IDs with search_authorities."),
		"proposal_types":     schemaArray("integer", "Proposal type IDs: 1=Götürü-Anahtar Teslimi Götürü, 2=Birim Fiyat, 3=Karma."),
		"announcement_types": schemaArray("integer", "Announcement type IDs: 1=Ön İlan, 2=İhale İlanı, 3=Sonuç İlanı, 4=İptal İlanı, 5=Ön Yeterlik İlanı, 6=Düzeltme İlanı."),
		"limit":              schemaProperty("integer", "Maximum number of results to return (1-100, default 10)."),
		"skip":               schemaProperty("integer", "Number of results to skip for pagination (default 0)."),
	}
	for _, f := range tenderFlagArgs {
		searchProperties[f.name] = schemaProperty("boolean", f.description+". Omit to leave unfiltered.")
	}
	for _, sc := range searchScopeArgs {
		searchProperties[sc.name] = schemaProperty("boolean", sc.description+" (default true).")
	}

	return []server.ServerTool{
		{
			Tool: mcp.Tool{
				Name:        "search_tenders",
				Description: "Search Turkish government tenders (ihale) on the EKAP v2 public procurement portal. Supports free text search across tender documents, IKN lookup, tender type, province (plate numbers), status, method, OKAS code, authority, announcement type and date filters, plus 17 optional boolean characteristics such as e-tender, consortium or advance payment. Returns a page of tender summaries with the portal link of each tender and the total number of matches.",
				InputSchema: mcp.ToolInputSchema{
					Type:       "object",
					Properties: searchProperties,
				},
			},
			Handler: s.instrument("search_tenders", s.handleSearchTenders),
		},
		{
			Tool: mcp.Tool{
				Name:        "search_okas_codes",
				Description: "Search OKAS codes, the classification taxonomy for procured goods, services and construction items. Matches the Turkish and English item names. Use the returned codes with the okas_codes filter of search_tenders.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]interface{}{
						"search_term": schemaProperty("string", "Search term to find matching OKAS codes by description (Turkish or English)."),
						"kalem_turu":  schemaProperty("integer", "Filter by item type: 1=Mal (Goods), 2=Hizmet (Service), 3=Yapım (Construction). Other values are ignored."),
						"limit":       schemaProperty("integer", "Maximum number of results to return (1-500, default 50)."),
					},
				},
			},
			Handler: s.instrument("search_okas_codes", s.handleSearchOKASCodes),
		},
		{
			Tool: mcp.Tool{
				Name:        "search_authorities",
				Description: "Search contracting authorities (idare) in the DETSIS institution tree by name. Use the returned IDs with the authority_ids filter of search_tenders.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]interface{}{
						"search_term": schemaProperty("string", "Search term to find matching authorities/institutions by name."),
						"limit":       schemaProperty("integer", "Maximum number of results to return (1-500, default 50)."),
					},
				},
			},
			Handler: s.instrument("search_authorities", s.handleSearchAuthorities),
		},
		{
			Tool: mcp.Tool{
				Name:        "get_recent_tenders",
				Description: "Get tenders announced in the last N days, newest first. Convenience wrapper around search_tenders for monitoring recent procurement activity.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]interface{}{
						"days":         schemaProperty("integer", "Number of days back to search (1-30, default 7)."),
						"tender_types": schemaArray("integer", "Filter by tender types: 1=Mal, 2=Yapım, 3=Hizmet, 4=Danışmanlık."),
						"limit":        schemaProperty("integer", "Maximum number of results (1-100, default 20)."),
					},
				},
			},
			Handler: s.instrument("get_recent_tenders", s.handleGetRecentTenders),
		},
		{
			Tool: mcp.Tool{
				Name:        "get_tender_announcements",
				Description: "Get all announcements of a tender (Ön İlan, İhale İlanı, Sonuç İlanı, İptal İlanı, Düzeltme İlanı, ...) with the raw HTML, a markdown rendering and a short plain text preview.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]interface{}{
						"tender_id": schemaProperty("integer", "The tender ID (the 'id' field of search_tenders results, not the IKN)."),
					},
					Required: []string{"tender_id"},
				},
			},
			Handler: s.instrument("get_tender_announcements", s.handleGetTenderAnnouncements),
		},
		{
			Tool: mcp.Tool{
				Name:        "get_tender_details",
				Description: "Get comprehensive details of a tender: basic information, characteristics, OKAS codes, contracting authority, process rules, announcements with markdown content, flags and cancellation information when the tender was cancelled.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]interface{}{
						"tender_id": schemaProperty("integer", "The tender ID (the 'id' field of search_tenders results, not the IKN)."),
					},
					Required: []string{"tender_id"},
				},
			},
			Handler: s.instrument("get_tender_details", s.handleGetTenderDetails),
		},
		{
			Tool: mcp.Tool{
				Name:        "get_reference_codes",
				Description: "List the reference code tables used by the search filters: tender types, statuses, methods, proposal types, announcement types, OKAS item types and provinces with their plate numbers. Does not contact the portal.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]interface{}{
						"category": map[string]interface{}{
							"type":        "string",
							"enum":        referenceCategories(),
							"description": "Return only one table. Omit to return all of them.",
						},
					},
				},
			},
			Handler: s.instrument("get_reference_codes", s.handleGetReferenceCodes),
		},
	}
}

type loggerKey struct{}

// instrument gives every call its own id, logs it and counts its outcome.
func (s *IhaleServer) instrument(tool string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := s.logger.With(slog.String("tool", tool), slog.String("callID", uuid.NewString()))
		ctx = context.WithValue(ctx, loggerKey{}, logger)

		start := time.Now()
		logger.Info("Tool call started", slog.Any("arguments", request.GetArguments()))

		result, err := handler(ctx, request)

		outcome := "success"
		if err != nil || (result != nil && result.IsError) {
			outcome = "error"
		}
		s.toolCalls.WithLabelValues(tool, outcome).Inc()
		logger.Info("Tool call finished",
			slog.String("outcome", outcome),
			slog.Duration("duration", time.Since(start)))
		return result, err
	}
}

func (s *IhaleServer) loggerFrom(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return s.logger
}

func (s *IhaleServer) today() string {
	return common.FormatDate(s.now())
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func errorRecordResult(record map[string]interface{}) *mcp.CallToolResult {
	data, err := json.Marshal(record)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprint(record["error"]))
	}
	return mcp.NewToolResultError(string(data))
}

func invalidArguments(err error) *mcp.CallToolResult {
	return errorRecordResult(map[string]interface{}{
		"error":   "Invalid arguments",
		"message": err.Error(),
	})
}

// upstreamError turns a client error into the error record returned to the caller.
func (s *IhaleServer) upstreamError(ctx context.Context, err error, operation string, tenderID *int64) *mcp.CallToolResult {
	record := map[string]interface{}{}
	switch code, hasStatus := ekap.StatusCode(err); {
	case errors.Is(err, ekap.ErrTenderNotFound):
		record["error"] = "Tender details not found"
		record["message"] = fmt.Sprintf("no tender with id %d", derefID(tenderID))
	case hasStatus:
		record["error"] = fmt.Sprintf("API request failed with status %d", code)
		record["message"] = err.Error()
	default:
		record["error"] = "Request failed - " + operation
		record["message"] = err.Error()
	}
	if tenderID != nil {
		record["tender_id"] = *tenderID
	}

	s.loggerFrom(ctx).Error("EKAP request failed",
		slog.String("operation", operation),
		slog.Any("error", err))
	return errorRecordResult(record)
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

// requiredTenderID reads tender_id, which must be a positive whole number.
func requiredTenderID(args map[string]interface{}) (int64, error) {
	v, ok := args["tender_id"]
	if !ok || v == nil {
		return 0, errors.New("argument 'tender_id' is required")
	}
	id, err := toInt("tender_id", v)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("argument 'tender_id' must be positive, got %d", id)
	}
	return id, nil
}

func optionalDate(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// enumArg reads a string argument restricted to allowed values. Anything
// else falls back to def.
func enumArg(logger *slog.Logger, r *argReader, key, def string, allowed ...string) string {
	value := r.text(key, "")
	if value == "" {
		return def
	}
	chosen := oneOf(value, def, allowed...)
	if chosen != value {
		logger.Warn("Ignoring unsupported argument value",
			slog.String("argument", key),
			slog.String("value", value),
			slog.String("default", def))
	}
	return chosen
}

type dateRangeEcho struct {
	TenderStart       *string `json:"tender_start"`
	TenderEnd         *string `json:"tender_end"`
	AnnouncementStart *string `json:"announcement_start"`
	AnnouncementEnd   *string `json:"announcement_end"`
}

type tenderSearchEcho struct {
	SearchText  string        `json:"search_text"`
	IKNYear     *int          `json:"ikn_year"`
	IKNNumber   *int          `json:"ikn_number"`
	TenderTypes []int         `json:"tender_types"`
	DateRange   dateRangeEcho `json:"date_range"`
}

type tenderSearchOutput struct {
	*ekap.TenderSearchResult
	SearchParams tenderSearchEcho `json:"search_params"`
}

func (s *IhaleServer) handleSearchTenders(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := newArgReader(request.GetArguments())
	logger := s.loggerFrom(ctx)

	params := ekap.DefaultTenderSearchParams()
	params.SearchText = r.text("search_text", "")
	params.IKNYear = r.optionalInt("ikn_year")
	params.IKNNumber = r.optionalInt("ikn_number")
	params.TenderTypes = r.intList("tender_types")

	params.TenderDateStart = r.text("tender_date_start", "")
	params.TenderDateEnd = r.text("tender_date_end", "")
	params.AnnouncementDateStart = r.text("announcement_date_start", "")
	params.AnnouncementDateEnd = r.text("announcement_date_end", "")
	if r.text("announcement_date_filter", "") == "today" {
		today := s.today()
		params.AnnouncementDateStart = today
		params.AnnouncementDateEnd = today
	}
	if r.text("tender_date_filter", "") == "from_today" {
		params.TenderDateStart = s.today()
		params.TenderDateEnd = ""
	}

	params.SearchType = enumArg(logger, r, "search_type", ekap.SearchTypeExact, ekap.SearchTypeExact, ekap.SearchTypeAllWords)
	params.OrderBy = enumArg(logger, r, "order_by", "ihaleTarihi", "ihaleTarihi", "ihaleAdi", "idareAdi")
	params.SortOrder = enumArg(logger, r, "sort_order", "desc", "asc", "desc")

	for _, f := range tenderFlagArgs {
		*f.field(&params.Flags) = r.optionalBool(f.name)
	}
	for _, sc := range searchScopeArgs {
		*sc.field(&params.Scope) = r.flag(sc.name, true)
	}

	plates := r.intList("provinces")
	params.TenderStatuses = r.intList("tender_statuses")
	params.TenderMethods = r.intList("tender_methods")
	params.TenderSubMethods = r.intList("tender_sub_methods")
	params.OKASCodes = r.stringList("okas_codes")
	params.AuthorityIDs = r.intList("authority_ids")
	params.ProposalTypes = r.intList("proposal_types")
	params.AnnouncementTypes = r.intList("announcement_types")
	params.Limit = ekap.Clamp(r.number("limit", ekap.DefaultTenderLimit), 1, ekap.MaxTenderLimit)
	params.Skip = r.number("skip", 0)
	if params.Skip < 0 {
		params.Skip = 0
	}
	if r.err != nil {
		return invalidArguments(r.err), nil
	}

	params.ProvinceIDs = ekap.ProvinceIDsForPlates(plates)
	if len(plates) > 0 && len(params.ProvinceIDs) < len(plates) {
		logger.Warn("Ignoring unknown province plate numbers",
			slog.Any("plates", plates),
			slog.Any("provinceIDs", params.ProvinceIDs))
	}

	result, err := s.client.SearchTenders(ctx, params)
	if err != nil {
		return s.upstreamError(ctx, err, "tender search", nil), nil
	}

	return jsonResult(tenderSearchOutput{
		TenderSearchResult: result,
		SearchParams: tenderSearchEcho{
			SearchText:  params.SearchText,
			IKNYear:     params.IKNYear,
			IKNNumber:   params.IKNNumber,
			TenderTypes: params.TenderTypes,
			DateRange: dateRangeEcho{
				TenderStart:       optionalDate(params.TenderDateStart),
				TenderEnd:         optionalDate(params.TenderDateEnd),
				AnnouncementStart: optionalDate(params.AnnouncementDateStart),
				AnnouncementEnd:   optionalDate(params.AnnouncementDateEnd),
			},
		},
	})
}

func itemTypeLegend() map[string]string {
	legend := make(map[string]string, len(ekap.ItemTypeLegend))
	for code, description := range ekap.ItemTypeLegend {
		legend[strconv.Itoa(code)] = description
	}
	return legend
}

func (s *IhaleServer) handleSearchOKASCodes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := newArgReader(request.GetArguments())
	searchTerm := r.text("search_term", "")
	itemType := r.optionalInt("kalem_turu")
	limit := ekap.Clamp(r.number("limit", ekap.DefaultLookupLimit), 1, ekap.MaxLookupLimit)
	if r.err != nil {
		return invalidArguments(r.err), nil
	}

	if itemType != nil {
		if _, known := ekap.ItemTypeLegend[*itemType]; !known {
			s.loggerFrom(ctx).Warn("Ignoring unknown OKAS item type", slog.Int("kalemTuru", *itemType))
			itemType = nil
		}
	}

	codes, err := s.client.SearchOKASCodes(ctx, searchTerm, itemType, limit)
	if err != nil {
		return s.upstreamError(ctx, err, "OKAS search", nil), nil
	}

	return jsonResult(map[string]interface{}{
		"okas_codes":  codes,
		"total_found": len(codes),
		"search_params": map[string]interface{}{
			"search_term": searchTerm,
			"kalem_turu":  itemType,
			"limit":       limit,
		},
		"item_type_legend": itemTypeLegend(),
	})
}

func (s *IhaleServer) handleSearchAuthorities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := newArgReader(request.GetArguments())
	searchTerm := r.text("search_term", "")
	limit := ekap.Clamp(r.number("limit", ekap.DefaultLookupLimit), 1, ekap.MaxLookupLimit)
	if r.err != nil {
		return invalidArguments(r.err), nil
	}

	authorities, err := s.client.SearchAuthorities(ctx, searchTerm, limit)
	if err != nil {
		return s.upstreamError(ctx, err, "authority search", nil), nil
	}

	return jsonResult(map[string]interface{}{
		"authorities": authorities,
		"total_found": len(authorities),
		"search_params": map[string]interface{}{
			"search_term": searchTerm,
			"limit":       limit,
		},
	})
}

func (s *IhaleServer) handleGetRecentTenders(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := newArgReader(request.GetArguments())
	days := ekap.Clamp(r.number("days", defaultRecentDays), 1, ekap.MaxRecentDays)
	tenderTypes := r.intList("tender_types")
	limit := ekap.Clamp(r.number("limit", defaultRecentLimit), 1, ekap.MaxTenderLimit)
	if r.err != nil {
		return invalidArguments(r.err), nil
	}

	end := s.now()
	start := end.AddDate(0, 0, -days)

	params := ekap.DefaultTenderSearchParams()
	params.TenderTypes = tenderTypes
	params.AnnouncementDateStart = common.FormatDate(start)
	params.AnnouncementDateEnd = common.FormatDate(end)
	params.Limit = limit

	result, err := s.client.SearchTenders(ctx, params)
	if err != nil {
		return s.upstreamError(ctx, err, "tender search", nil), nil
	}

	return jsonResult(map[string]interface{}{
		"recent_tenders": result.Tenders,
		"total_count":    result.TotalCount,
		"date_range": map[string]interface{}{
			"start":     params.AnnouncementDateStart,
			"end":       params.AnnouncementDateEnd,
			"days_back": days,
		},
		"filters_applied": map[string]interface{}{
			"tender_types": tenderTypes,
			"limit":        limit,
		},
	})
}

func (s *IhaleServer) handleGetTenderAnnouncements(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tenderID, err := requiredTenderID(request.GetArguments())
	if err != nil {
		return invalidArguments(err), nil
	}

	announcements, err := s.client.GetTenderAnnouncements(ctx, tenderID)
	if err != nil {
		return s.upstreamError(ctx, err, "tender announcements", &tenderID), nil
	}
	return jsonResult(announcements)
}

type tenderDetailSummary struct {
	TenderName           *string `json:"tender_name"`
	IKN                  *string `json:"ikn"`
	Status               *string `json:"status"`
	Authority            *string `json:"authority"`
	Location             *string `json:"location"`
	IsElectronic         bool    `json:"is_electronic"`
	CharacteristicsCount int     `json:"characteristics_count"`
	OKASCodesCount       int     `json:"okas_codes_count"`
	AnnouncementsCount   int     `json:"announcements_count"`
}

func (s *IhaleServer) handleGetTenderDetails(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tenderID, err := requiredTenderID(request.GetArguments())
	if err != nil {
		return invalidArguments(err), nil
	}

	detail, err := s.client.GetTenderDetails(ctx, tenderID)
	if err != nil {
		return s.upstreamError(ctx, err, "tender details", &tenderID), nil
	}

	return jsonResult(map[string]interface{}{
		"tender_details": detail,
		"summary": tenderDetailSummary{
			TenderName:           detail.Name,
			IKN:                  detail.IKN,
			Status:               detail.Status.Description,
			Authority:            detail.Authority.Name,
			Location:             detail.BasicInfo.Location,
			IsElectronic:         detail.BasicInfo.IsElectronic,
			CharacteristicsCount: len(detail.Characteristics),
			OKASCodesCount:       len(detail.OKASCodes),
			AnnouncementsCount:   detail.AnnouncementsSummary.TotalCount,
		},
	})
}

type provinceCode struct {
	Plate int    `json:"plate"`
	ID    int    `json:"id"`
	Name  string `json:"name"`
}

func provinceCodes() []provinceCode {
	provinces := make([]provinceCode, 0, len(ekap.PlateToAPIID))
	for plate, id := range ekap.PlateToAPIID {
		name, _ := ekap.ProvinceName(id)
		provinces = append(provinces, provinceCode{Plate: plate, ID: id, Name: name})
	}
	sort.Slice(provinces, func(i, j int) bool { return provinces[i].Plate < provinces[j].Plate })
	return provinces
}

func referenceTables() map[string]interface{} {
	return map[string]interface{}{
		"tender_types":       ekap.TenderTypes,
		"tender_statuses":    ekap.TenderStatuses,
		"tender_methods":     ekap.TenderMethods,
		"proposal_types":     ekap.ProposalTypes,
		"announcement_types": ekap.AnnouncementTypes,
		"okas_item_types":    itemTypeLegend(),
		"provinces":          provinceCodes(),
	}
}

func referenceCategories() []string {
	tables := referenceTables()
	categories := make([]string, 0, len(tables))
	for name := range tables {
		categories = append(categories, name)
	}
	sort.Strings(categories)
	return categories
}

func (s *IhaleServer) handleGetReferenceCodes(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := request.GetString("category", "")
	tables := referenceTables()
	if category == "" {
		return jsonResult(tables)
	}

	table, ok := tables[category]
	if !ok {
		return errorRecordResult(map[string]interface{}{
			"error":   "Unknown reference category",
			"message": fmt.Sprintf("category %q is not one of %v", category, referenceCategories()),
		}), nil
	}
	return jsonResult(map[string]interface{}{category: table})
}
