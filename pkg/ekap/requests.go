package ekap

import (
	"strconv"

	"github.com/ihale-mcp/ihale-mcp/pkg/common"
)

// Search types accepted by the tender search endpoint.
const (
	SearchTypeExact    = "GirdigimGibi"
	SearchTypeAllWords = "TumKelimeler"
)

// Result limits enforced before any request is built.
const (
	MaxTenderLimit     = 100
	MaxLookupLimit     = 500
	MaxRecentDays      = 30
	DefaultTenderLimit = 10
	DefaultLookupLimit = 50
)

// TenderFlags holds the optional boolean filters of a tender search.
// A nil field is sent as null, which the API treats as "unset" rather than false.
type TenderFlags struct {
	EIhale                           *bool `json:"eIhale"`
	EEksiltmeYapilacakMi             *bool `json:"eEksiltmeYapilacakMi"`
	OrtakAlimMi                      *bool `json:"ortakAlimMi"`
	KismiTeklifMi                    *bool `json:"kismiTeklifMi"`
	FiyatDisiUnsurVarmi              *bool `json:"fiyatDisiUnsurVarmi"`
	EkonomikMaliYeterlilikIsteniyor  *bool `json:"ekonomikVeMaliYeterlilikBelgeleriIsteniyorMu"`
	MeslekiTeknikYeterlilikIsteniyor *bool `json:"meslekiTeknikYeterlilikBelgeleriIsteniyorMu"`
	IsDeneyimiBelgeleriIsteniyor     *bool `json:"isDeneyimiGosterenBelgelerIsteniyorMu"`
	YerliIstekliyeFiyatAvantaji      *bool `json:"yerliIstekliyeFiyatAvantajiUgulaniyorMu"`
	YabanciIsteklilereIzin           *bool `json:"yabanciIsteklilereIzinVeriliyorMu"`
	AlternatifTeklifVerilebilirMi    *bool `json:"alternatifTeklifVerilebilirMi"`
	KonsorsiyumKatilabilirMi         *bool `json:"konsorsiyumKatilabilirMi"`
	AltYukleniciCalistirilabilirMi   *bool `json:"altYukleniciCalistirilabilirMi"`
	FiyatFarkiVerilecekMi            *bool `json:"fiyatFarkiVerilecekMi"`
	AvansVerilecekMi                 *bool `json:"avansVerilecekMi"`
	CerceveAnlasmaMi                 *bool `json:"cerceveAnlasmaMi"`
	PersonelCalistirilmasinaDayaliMi *bool `json:"personelCalistirilmasinaDayaliMi"`
}

// SearchScope selects which tender documents the free-text search looks into.
type SearchScope struct {
	IKN            bool `json:"ikNdeAra"`
	Title          bool `json:"ihaleAdindaAra"`
	Announcement   bool `json:"ihaleIlanindaAra"`
	TechSpec       bool `json:"teknikSartnamedeAra"`
	AdminSpec      bool `json:"idariSartnamedeAra"`
	SimilarWork    bool `json:"benzerIsMaddesindeAra"`
	Location       bool `json:"isinYapilacagiYerMaddesindeAra"`
	NatureQuantity bool `json:"nitelikTurMiktarMaddesindeAra"`
	TenderInfo     bool `json:"ihaleBilgilerindeAra"`
	ContractDraft  bool `json:"sozlesmeTasarisindaAra"`
	BidForm        bool `json:"teklifCetvelindeAra"`
}

// FullSearchScope searches every document section.
func FullSearchScope() SearchScope {
	return SearchScope{
		IKN: true, Title: true, Announcement: true, TechSpec: true, AdminSpec: true,
		SimilarWork: true, Location: true, NatureQuantity: true, TenderInfo: true,
		ContractDraft: true, BidForm: true,
	}
}

// TenderSearchParams is the flat, caller-facing description of a tender search.
// Dates are YYYY-MM-DD. ProvinceIDs are EKAP ids, not plate numbers.
type TenderSearchParams struct {
	SearchText string
	IKNYear    *int
	IKNNumber  *int

	TenderDateStart       string
	TenderDateEnd         string
	AnnouncementDateStart string
	AnnouncementDateEnd   string

	SearchType string
	OrderBy    string
	SortOrder  string

	Flags TenderFlags
	Scope SearchScope

	TenderTypes       []int
	ProvinceIDs       []int
	TenderStatuses    []int
	TenderMethods     []int
	TenderSubMethods  []int
	OKASCodes         []string
	AuthorityIDs      []int
	ProposalTypes     []int
	AnnouncementTypes []int

	Skip  int
	Limit int
}

// DefaultTenderSearchParams returns a search over every section, newest tenders first.
func DefaultTenderSearchParams() TenderSearchParams {
	return TenderSearchParams{
		SearchType: SearchTypeExact,
		OrderBy:    "ihaleTarihi",
		SortOrder:  "desc",
		Scope:      FullSearchScope(),
		Limit:      DefaultTenderLimit,
	}
}

// Clamp bounds value to [lo, hi].
func Clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// TenderSearchRequest is the body of Ihale/GetListByParameters.
type TenderSearchRequest struct {
	SearchText string  `json:"searchText"`
	FilterType *string `json:"filterType"`
	SearchScope
	SearchType string `json:"searchType"`
	IKNYili    *int   `json:"iknYili"`
	IKNSayi    *int   `json:"iknSayi"`

	IhaleTarihSaatBaslangic *string `json:"ihaleTarihSaatBaslangic"`
	IhaleTarihSaatBitis     *string `json:"ihaleTarihSaatBitis"`
	IlanTarihSaatBaslangic  *string `json:"ilanTarihSaatBaslangic"`
	IlanTarihSaatBitis      *string `json:"ilanTarihSaatBitis"`

	YasaKapsami4734List    []int    `json:"yasaKapsami4734List"`
	IhaleTuruIDList        []int    `json:"ihaleTuruIdList"`
	IhaleUsulIDList        []int    `json:"ihaleUsulIdList"`
	IhaleUsulAltIDList     []int    `json:"ihaleUsulAltIdList"`
	IhaleIlIDList          []int    `json:"ihaleIlIdList"`
	IhaleDurumIDList       []int    `json:"ihaleDurumIdList"`
	IdareIDList            []int    `json:"idareIdList"`
	IhaleIlanTuruIDList    []int    `json:"ihaleIlanTuruIdList"`
	TeklifTuruIDList       []int    `json:"teklifTuruIdList"`
	AsiriDusukTeklifIDList []int    `json:"asiriDusukTeklifIdList"`
	IstisnaMaddeIDList     []int    `json:"istisnaMaddeIdList"`
	OKASBransKodList       []string `json:"okasBransKodList"`
	OKASBransAdiList       []string `json:"okasBransAdiList"`
	TitubbKodList          []string `json:"titubbKodList"`
	GmdnKodList            []string `json:"gmdnKodList"`

	TenderFlags

	OrderBy        string `json:"orderBy"`
	SiralamaTipi   string `json:"siralamaTipi"`
	PaginationSkip int    `json:"paginationSkip"`
	PaginationTake int    `json:"paginationTake"`
}

func ints(values []int) []int {
	if values == nil {
		return []int{}
	}
	return values
}

func strs(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// BuildTenderSearchRequest maps search params onto the upstream body.
// Omitted lists become [] and omitted flags stay null.
func BuildTenderSearchRequest(p TenderSearchParams) TenderSearchRequest {
	return TenderSearchRequest{
		SearchText:  p.SearchText,
		SearchScope: p.Scope,
		SearchType:  p.SearchType,
		IKNYili:     p.IKNYear,
		IKNSayi:     p.IKNNumber,

		IhaleTarihSaatBaslangic: common.FormatAPIDate(p.TenderDateStart),
		IhaleTarihSaatBitis:     common.FormatAPIDate(p.TenderDateEnd),
		IlanTarihSaatBaslangic:  common.FormatAPIDate(p.AnnouncementDateStart),
		IlanTarihSaatBitis:      common.FormatAPIDate(p.AnnouncementDateEnd),

		YasaKapsami4734List:    []int{},
		IhaleTuruIDList:        ints(p.TenderTypes),
		IhaleUsulIDList:        ints(p.TenderMethods),
		IhaleUsulAltIDList:     ints(p.TenderSubMethods),
		IhaleIlIDList:          ints(p.ProvinceIDs),
		IhaleDurumIDList:       ints(p.TenderStatuses),
		IdareIDList:            ints(p.AuthorityIDs),
		IhaleIlanTuruIDList:    ints(p.AnnouncementTypes),
		TeklifTuruIDList:       ints(p.ProposalTypes),
		AsiriDusukTeklifIDList: []int{},
		IstisnaMaddeIDList:     []int{},
		OKASBransKodList:       strs(p.OKASCodes),
		OKASBransAdiList:       []string{},
		TitubbKodList:          []string{},
		GmdnKodList:            []string{},

		TenderFlags: p.Flags,

		OrderBy:        p.OrderBy,
		SiralamaTipi:   p.SortOrder,
		PaginationSkip: p.Skip,
		PaginationTake: p.Limit,
	}
}

// LoadFilter is the DevExtreme loadOptions.filter skeleton shared by the
// OKAS and authority endpoints.
type LoadFilter struct {
	Sort         []any `json:"sort"`
	Group        []any `json:"group"`
	Filter       Group `json:"filter"`
	TotalSummary []any `json:"totalSummary"`
	GroupSummary []any `json:"groupSummary"`
	Select       []any `json:"select"`
	PreSelect    []any `json:"preSelect"`
	PrimaryKey   []any `json:"primaryKey"`
}

type LoadOptions struct {
	Filter LoadFilter `json:"filter"`
	Take   int        `json:"take"`
}

// LoadOptionsRequest is the body of the OKAS and authority tree endpoints.
type LoadOptionsRequest struct {
	LoadOptions LoadOptions `json:"loadOptions"`
}

func newLoadOptionsRequest(filter Group, take int) LoadOptionsRequest {
	return LoadOptionsRequest{
		LoadOptions: LoadOptions{
			Filter: LoadFilter{
				Sort:         []any{},
				Group:        []any{},
				Filter:       filter,
				TotalSummary: []any{},
				GroupSummary: []any{},
				Select:       []any{},
				PreSelect:    []any{},
				PrimaryKey:   []any{},
			},
			Take: take,
		},
	}
}

// BuildOKASSearchRequest searches both the Turkish and English item names.
// Filtering by item type is never sent: the endpoint answers 500 for it.
func BuildOKASSearchRequest(searchTerm string, limit int) LoadOptionsRequest {
	var filter Group
	if searchTerm != "" {
		filter = Or(Contains("kalemAdi", searchTerm), Contains("kalemAdiEng", searchTerm))
	}
	return newLoadOptionsRequest(filter, limit)
}

// BuildAuthoritySearchRequest searches authority names.
func BuildAuthoritySearchRequest(searchTerm string, limit int) LoadOptionsRequest {
	var filter Group
	if searchTerm != "" {
		filter = And(Contains("ad", searchTerm))
	}
	return newLoadOptionsRequest(filter, limit)
}

// AnnouncementsRequest is the body of Ilan/GetList.
type AnnouncementsRequest struct {
	IhaleID int64 `json:"ihaleId"`
}

func BuildAnnouncementsRequest(tenderID int64) AnnouncementsRequest {
	return AnnouncementsRequest{IhaleID: tenderID}
}

// TenderDetailRequest is the body of IhaleDetay/GetByIhaleIdIhaleDetay.
// The endpoint wants the numeric id as a string.
type TenderDetailRequest struct {
	IhaleID string `json:"ihaleId"`
}

func BuildTenderDetailRequest(tenderID int64) TenderDetailRequest {
	return TenderDetailRequest{IhaleID: strconv.FormatInt(tenderID, 10)}
}
