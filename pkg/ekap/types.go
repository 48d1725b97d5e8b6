package ekap

// Upstream payloads. Field names are the portal's own.

// TenderListResponse is the answer of Ihale/GetListByParameters.
type TenderListResponse struct {
	List       []TenderListItem `json:"list"`
	TotalCount any              `json:"totalCount"`
}

type TenderListItem struct {
	ID                 any     `json:"id"`
	IhaleAdi           *string `json:"ihaleAdi"`
	IKN                *string `json:"ikn"`
	IhaleTip           any     `json:"ihaleTip"`
	IhaleTipAciklama   *string `json:"ihaleTipAciklama"`
	IhaleUsulAciklama  *string `json:"ihaleUsulAciklama"`
	IhaleDurum         any     `json:"ihaleDurum"`
	IhaleDurumAciklama *string `json:"ihaleDurumAciklama"`
	IdareAdi           *string `json:"idareAdi"`
	IhaleIlAdi         *string `json:"ihaleIlAdi"`
	IhaleTarihSaat     *string `json:"ihaleTarihSaat"`
	DokumanSayisi      any     `json:"dokumanSayisi"`
	IlanVarMi          bool    `json:"ilanVarMi"`
}

// LoadResultResponse is the DevExtreme answer of the OKAS and authority endpoints.
type LoadResultResponse[T any] struct {
	LoadResult struct {
		Data []T `json:"data"`
	} `json:"loadResult"`
}

type OKASItem struct {
	ID          any     `json:"id"`
	Kod         any     `json:"kod"`
	KalemAdi    *string `json:"kalemAdi"`
	KalemAdiEng *string `json:"kalemAdiEng"`
	KalemTuru   any     `json:"kalemTuru"`
	KodLevel    any     `json:"kodLevel"`
	ParentID    any     `json:"parentId"`
	HasItem     bool    `json:"hasItem"`
	ChildCount  any     `json:"childCount"`
}

type AuthorityItem struct {
	ID                    any     `json:"id"`
	Ad                    *string `json:"ad"`
	ParentIdareKimlikKodu any     `json:"parentIdareKimlikKodu"`
	Seviye                any     `json:"seviye"`
	HasItems              bool    `json:"hasItems"`
	DetsisNo              any     `json:"detsisNo"`
	IdareID               any     `json:"idareId"`
}

// AnnouncementListResponse is the answer of Ilan/GetList.
type AnnouncementListResponse struct {
	List []AnnouncementItem `json:"list"`
}

type AnnouncementItem struct {
	ID         any     `json:"id"`
	IlanTip    any     `json:"ilanTip"`
	Baslik     *string `json:"baslik"`
	IlanTarihi *string `json:"ilanTarihi"`
	Status     any     `json:"status"`
	IhaleID    any     `json:"ihaleId"`
	SozlesmeID any     `json:"sozlesmeId"`
	IstekliAdi *string `json:"istekliAdi"`
	VeriHTML   *string `json:"veriHtml"`
}

type TenderInfoBlock struct {
	IhaleDurumAciklama           *string `json:"ihaleDurumAciklama"`
	IhaleUsulAciklama            *string `json:"ihaleUsulAciklama"`
	IhaleTipiAciklama            *string `json:"ihaleTipiAciklama"`
	IhaleTarihSaat               *string `json:"ihaleTarihSaat"`
	IsinYapilacagiYer            *string `json:"isinYapilacagiYer"`
	IhaleYeri                    *string `json:"ihaleYeri"`
	ItirazenSikayetBasvuruBedeli any     `json:"itirazenSikayetBasvuruBedeli"`
	IptalTarihi                  any     `json:"iptalTarihi"`
	IptalNedeni                  any     `json:"iptalNedeni"`
	IptalMadde                   any     `json:"iptalMadde"`
}

type AuthorityBlock struct {
	ID            any     `json:"id"`
	Adi           *string `json:"adi"`
	Kod1          any     `json:"kod1"`
	Kod2          any     `json:"kod2"`
	Telefon       any     `json:"telefon"`
	Fax           any     `json:"fax"`
	UstIdare      any     `json:"ustIdare"`
	EnUstIdareKod any     `json:"enUstIdareKod"`
	EnUstIdareAdi *string `json:"enUstIdareAdi"`
	Il            struct {
		Adi *string `json:"adi"`
	} `json:"il"`
	Ilce struct {
		IlceAdi *string `json:"ilceAdi"`
	} `json:"ilce"`
}

type RuleSet struct {
	DokumanIndirmisMi    bool `json:"dokumanIndirmisMi"`
	TeklifteBulunmusMu   bool `json:"teklifteBulunmusMu"`
	TeklifVerilebilirMi  bool `json:"teklifVerilebilirMi"`
	FiyatDisiUnsurVarMi  bool `json:"fiyatDisiUnsurVarMi"`
	SozlesmeImzaliMi     bool `json:"sozlesmeImzaliMi"`
	EIhaleMi             bool `json:"eIhaleMi"`
	IdareKendiIhaleMi    bool `json:"idareKendiIhaleMi"`
	EEksiltmeYapilacakMi bool `json:"eEksiltmeYapilacakMi"`
}

type TenderDetailItem struct {
	ID                  any             `json:"id"`
	IKN                 *string         `json:"ikn"`
	IhaleAdi            *string         `json:"ihaleAdi"`
	IhaleDurum          any             `json:"ihaleDurum"`
	EIhale              bool            `json:"eIhale"`
	IhaleUsul           any             `json:"ihaleUsul"`
	IhaleKapsamAciklama *string         `json:"ihaleKapsamAciklama"`
	KismiIhale          bool            `json:"kismiIhale"`
	IhaleBilgi          TenderInfoBlock `json:"ihaleBilgi"`
	IhaleOzellikList    []struct {
		IhaleOzellik string `json:"ihaleOzellik"`
	} `json:"ihaleOzellikList"`
	IhtiyacKalemiOkasList []struct {
		Kodu    any     `json:"kodu"`
		Adi     *string `json:"adi"`
		KoduAdi *string `json:"koduAdi"`
	} `json:"ihtiyacKalemiOkasList"`
	Idare                          AuthorityBlock     `json:"idare"`
	IslemlerKuralSeti              RuleSet            `json:"islemlerKuralSeti"`
	IlanList                       []AnnouncementItem `json:"ilanList"`
	IhaleniIdaresiMi               bool               `json:"ihaleniIdaresiMi"`
	IhaleIlansizMi                 bool               `json:"ihaleIlansizMi"`
	IhaleyeDavetEdilenMi           bool               `json:"ihaleyeDavetEdilenMi"`
	IhaleDetayDokumaniGorsunMu     bool               `json:"ihaleDetayDokumaniGorsunMu"`
	DokumanIndirenlerGosterilsinMi bool               `json:"dokumanIndirenlerGosterilsinMi"`
	DokumanSayisi                  any                `json:"dokumanSayisi"`
}

// Normalized output.

// CodeDescription pairs an upstream code with its description.
type CodeDescription struct {
	Code        any     `json:"code"`
	Description *string `json:"description"`
}

type TenderSummary struct {
	ID              any             `json:"id"`
	Name            *string         `json:"name"`
	IKN             *string         `json:"ikn"`
	Type            CodeDescription `json:"type"`
	Method          *string         `json:"method"`
	Status          CodeDescription `json:"status"`
	Authority       *string         `json:"authority"`
	Province        *string         `json:"province"`
	TenderDatetime  *string         `json:"tender_datetime"`
	DocumentCount   any             `json:"document_count"`
	HasAnnouncement bool            `json:"has_announcement"`
	EKAPURL         string          `json:"ekap_url,omitempty"`
}

type TenderSearchResult struct {
	Tenders       []TenderSummary `json:"tenders"`
	TotalCount    any             `json:"total_count"`
	ReturnedCount int             `json:"returned_count"`
}

type ItemType struct {
	Code        any    `json:"code"`
	Description string `json:"description"`
}

type OKASCode struct {
	ID            any      `json:"id"`
	Code          any      `json:"code"`
	DescriptionTR *string  `json:"description_tr"`
	DescriptionEN *string  `json:"description_en"`
	ItemType      ItemType `json:"item_type"`
	CodeLevel     any      `json:"code_level"`
	ParentID      any      `json:"parent_id"`
	HasItems      bool     `json:"has_items"`
	ChildCount    any      `json:"child_count"`
}

type Authority struct {
	ID          any     `json:"id"`
	Name        *string `json:"name"`
	ParentID    any     `json:"parent_id"`
	Level       any     `json:"level"`
	HasChildren bool    `json:"has_children"`
	// ChildCount is not reported by the authority tree endpoint.
	ChildCount int `json:"child_count"`
	DetsisNo   any `json:"detsis_no"`
	IdareID    any `json:"idare_id"`
}

type AnnouncementKind struct {
	Code        any    `json:"code"`
	Description string `json:"description"`
}

// AnnouncementLinks is only present on announcements fetched through Ilan/GetList.
type AnnouncementLinks struct {
	TenderID   any     `json:"tender_id"`
	ContractID any     `json:"contract_id"`
	BidderName *string `json:"bidder_name"`
}

type Announcement struct {
	ID     any              `json:"id"`
	Type   AnnouncementKind `json:"type"`
	Title  *string          `json:"title"`
	Date   *string          `json:"date"`
	Status any              `json:"status"`
	*AnnouncementLinks
	HTMLContent     string  `json:"html_content"`
	MarkdownContent *string `json:"markdown_content"`
	ContentPreview  string  `json:"content_preview"`
}

type AnnouncementList struct {
	Announcements []Announcement `json:"announcements"`
	TotalCount    int            `json:"total_announcements"`
	TenderID      int64          `json:"tender_id"`
	TypesFound    []string       `json:"announcement_types_found"`
}

type BasicInfo struct {
	IsElectronic      bool    `json:"is_electronic"`
	MethodCode        any     `json:"method_code"`
	MethodDescription *string `json:"method_description"`
	TypeDescription   *string `json:"type_description"`
	ScopeDescription  *string `json:"scope_description"`
	TenderDatetime    *string `json:"tender_datetime"`
	Location          *string `json:"location"`
	Venue             *string `json:"venue"`
	ComplaintFee      any     `json:"complaint_fee"`
	IsPartial         bool    `json:"is_partial"`
}

type TenderOKASCode struct {
	Code            any     `json:"code"`
	Name            *string `json:"name"`
	FullDescription *string `json:"full_description"`
}

type AuthorityInfo struct {
	ID               any     `json:"id"`
	Name             *string `json:"name"`
	Code1            any     `json:"code1"`
	Code2            any     `json:"code2"`
	Phone            any     `json:"phone"`
	Fax              any     `json:"fax"`
	ParentAuthority  any     `json:"parent_authority"`
	TopAuthorityCode any     `json:"top_authority_code"`
	TopAuthorityName *string `json:"top_authority_name"`
	Province         *string `json:"province"`
	District         *string `json:"district"`
}

type ProcessRules struct {
	CanDownloadDocuments bool `json:"can_download_documents"`
	HasSubmittedBid      bool `json:"has_submitted_bid"`
	CanSubmitBid         bool `json:"can_submit_bid"`
	HasNonPriceFactors   bool `json:"has_non_price_factors"`
	ContractSigned       bool `json:"contract_signed"`
	IsElectronic         bool `json:"is_electronic"`
	IsOwnTender          bool `json:"is_own_tender"`
	ElectronicAuction    bool `json:"electronic_auction"`
}

type AnnouncementsSummary struct {
	TotalCount     int            `json:"total_count"`
	Announcements  []Announcement `json:"announcements"`
	TypesAvailable []string       `json:"types_available"`
}

type DetailFlags struct {
	IsAuthorityTender       bool `json:"is_authority_tender"`
	IsWithoutAnnouncement   bool `json:"is_without_announcement"`
	IsInvitationOnly        bool `json:"is_invitation_only"`
	ShowDetailDocuments     bool `json:"show_detail_documents"`
	ShowDocumentDownloaders bool `json:"show_document_downloaders"`
}

type CancellationInfo struct {
	CancelledDate       any `json:"cancelled_date"`
	CancellationReason  any `json:"cancellation_reason"`
	CancellationArticle any `json:"cancellation_article"`
}

type TenderDetail struct {
	TenderID             any                  `json:"tender_id"`
	IKN                  *string              `json:"ikn"`
	Name                 *string              `json:"name"`
	Status               CodeDescription      `json:"status"`
	BasicInfo            BasicInfo            `json:"basic_info"`
	Characteristics      []string             `json:"characteristics"`
	OKASCodes            []TenderOKASCode     `json:"okas_codes"`
	Authority            AuthorityInfo        `json:"authority"`
	ProcessRules         ProcessRules         `json:"process_rules"`
	AnnouncementsSummary AnnouncementsSummary `json:"announcements_summary"`
	Flags                DetailFlags          `json:"flags"`
	DocumentCount        any                  `json:"document_count"`
	CancellationInfo     *CancellationInfo    `json:"cancellation_info,omitempty"`
}
