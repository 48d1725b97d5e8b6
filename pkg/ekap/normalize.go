package ekap

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const characteristicPrefix = "TENDER_DETAIL."

// NormalizeTenders flattens a tender list answer.
func NormalizeTenders(resp *TenderListResponse) *TenderSearchResult {
	tenders := make([]TenderSummary, 0, len(resp.List))
	for _, t := range resp.List {
		summary := TenderSummary{
			ID:              t.ID,
			Name:            t.IhaleAdi,
			IKN:             t.IKN,
			Type:            CodeDescription{Code: t.IhaleTip, Description: t.IhaleTipAciklama},
			Method:          t.IhaleUsulAciklama,
			Status:          CodeDescription{Code: t.IhaleDurum, Description: t.IhaleDurumAciklama},
			Authority:       t.IdareAdi,
			Province:        t.IhaleIlAdi,
			TenderDatetime:  t.IhaleTarihSaat,
			DocumentCount:   orZero(t.DokumanSayisi),
			HasAnnouncement: t.IlanVarMi,
		}
		if truthy(t.ID) {
			summary.EKAPURL = TenderURL(t.ID)
		}
		tenders = append(tenders, summary)
	}
	return &TenderSearchResult{
		Tenders:       tenders,
		TotalCount:    orZero(resp.TotalCount),
		ReturnedCount: len(tenders),
	}
}

// NormalizeOKASCodes keeps the items of the requested item type, if any,
// and truncates the result to limit afterwards.
func NormalizeOKASCodes(items []OKASItem, itemType *int, limit int) []OKASCode {
	codes := make([]OKASCode, 0, len(items))
	for _, item := range items {
		kind, ok := scalarInt(item.KalemTuru)
		if itemType != nil && (!ok || kind != int64(*itemType)) {
			continue
		}
		description := "Unknown"
		if ok {
			description = ItemTypeDescription(int(kind))
		}
		codes = append(codes, OKASCode{
			ID:            item.ID,
			Code:          item.Kod,
			DescriptionTR: item.KalemAdi,
			DescriptionEN: item.KalemAdiEng,
			ItemType:      ItemType{Code: item.KalemTuru, Description: description},
			CodeLevel:     item.KodLevel,
			ParentID:      item.ParentID,
			HasItems:      item.HasItem,
			ChildCount:    orZero(item.ChildCount),
		})
	}
	if limit >= 0 && len(codes) > limit {
		codes = codes[:limit]
	}
	return codes
}

func NormalizeAuthorities(items []AuthorityItem) []Authority {
	authorities := make([]Authority, 0, len(items))
	for _, item := range items {
		authorities = append(authorities, Authority{
			ID:          item.ID,
			Name:        item.Ad,
			ParentID:    item.ParentIdareKimlikKodu,
			Level:       item.Seviye,
			HasChildren: item.HasItems,
			DetsisNo:    item.DetsisNo,
			IdareID:     item.IdareID,
		})
	}
	return authorities
}

// NormalizeAnnouncement renders one announcement. withLinks adds the
// tender, contract and bidder references carried by Ilan/GetList.
func (r *HTMLRenderer) NormalizeAnnouncement(a AnnouncementItem, withLinks bool) Announcement {
	code := a.IlanTip
	if code == nil {
		code = ""
	}
	html := deref(a.VeriHTML)
	out := Announcement{
		ID:              a.ID,
		Type:            AnnouncementKind{Code: code, Description: AnnouncementLabel(scalarString(code))},
		Title:           a.Baslik,
		Date:            a.IlanTarihi,
		Status:          a.Status,
		HTMLContent:     html,
		MarkdownContent: r.Markdown(html),
		ContentPreview:  r.Preview(html),
	}
	if withLinks {
		out.AnnouncementLinks = &AnnouncementLinks{
			TenderID:   a.IhaleID,
			ContractID: a.SozlesmeID,
			BidderName: a.IstekliAdi,
		}
	}
	return out
}

func (r *HTMLRenderer) NormalizeAnnouncements(items []AnnouncementItem, withLinks bool) []Announcement {
	announcements := make([]Announcement, 0, len(items))
	for _, item := range items {
		announcements = append(announcements, r.NormalizeAnnouncement(item, withLinks))
	}
	return announcements
}

// AnnouncementTypesFound lists the distinct type descriptions in first-seen order.
func AnnouncementTypesFound(announcements []Announcement) []string {
	seen := make(map[string]struct{}, len(announcements))
	types := make([]string, 0)
	for _, a := range announcements {
		if _, ok := seen[a.Type.Description]; ok {
			continue
		}
		seen[a.Type.Description] = struct{}{}
		types = append(types, a.Type.Description)
	}
	return types
}

// CleanCharacteristic turns "TENDER_DETAIL.E_IHALE" into "E Ihale".
// Texts without the prefix are returned unchanged.
func CleanCharacteristic(text string) string {
	if !strings.Contains(text, characteristicPrefix) {
		return text
	}
	text = strings.ReplaceAll(text, characteristicPrefix, "")
	text = strings.ReplaceAll(text, "_", " ")
	// cases.Caser keeps state and must not be shared between goroutines.
	return cases.Title(language.Und).String(text)
}

// NormalizeTenderDetail flattens the detail item.
func (r *HTMLRenderer) NormalizeTenderDetail(item *TenderDetailItem) *TenderDetail {
	info := item.IhaleBilgi

	characteristics := make([]string, 0, len(item.IhaleOzellikList))
	for _, c := range item.IhaleOzellikList {
		characteristics = append(characteristics, CleanCharacteristic(c.IhaleOzellik))
	}

	okasCodes := make([]TenderOKASCode, 0, len(item.IhtiyacKalemiOkasList))
	for _, o := range item.IhtiyacKalemiOkasList {
		okasCodes = append(okasCodes, TenderOKASCode{Code: o.Kodu, Name: o.Adi, FullDescription: o.KoduAdi})
	}

	idare := item.Idare
	rules := item.IslemlerKuralSeti
	announcements := r.NormalizeAnnouncements(item.IlanList, false)

	detail := &TenderDetail{
		TenderID: item.ID,
		IKN:      item.IKN,
		Name:     item.IhaleAdi,
		Status:   CodeDescription{Code: item.IhaleDurum, Description: info.IhaleDurumAciklama},
		BasicInfo: BasicInfo{
			IsElectronic:      item.EIhale,
			MethodCode:        item.IhaleUsul,
			MethodDescription: info.IhaleUsulAciklama,
			TypeDescription:   info.IhaleTipiAciklama,
			ScopeDescription:  item.IhaleKapsamAciklama,
			TenderDatetime:    info.IhaleTarihSaat,
			Location:          info.IsinYapilacagiYer,
			Venue:             info.IhaleYeri,
			ComplaintFee:      info.ItirazenSikayetBasvuruBedeli,
			IsPartial:         item.KismiIhale,
		},
		Characteristics: characteristics,
		OKASCodes:       okasCodes,
		Authority: AuthorityInfo{
			ID:               idare.ID,
			Name:             idare.Adi,
			Code1:            idare.Kod1,
			Code2:            idare.Kod2,
			Phone:            idare.Telefon,
			Fax:              idare.Fax,
			ParentAuthority:  idare.UstIdare,
			TopAuthorityCode: idare.EnUstIdareKod,
			TopAuthorityName: idare.EnUstIdareAdi,
			Province:         idare.Il.Adi,
			District:         idare.Ilce.IlceAdi,
		},
		ProcessRules: ProcessRules{
			CanDownloadDocuments: rules.DokumanIndirmisMi,
			HasSubmittedBid:      rules.TeklifteBulunmusMu,
			CanSubmitBid:         rules.TeklifVerilebilirMi,
			HasNonPriceFactors:   rules.FiyatDisiUnsurVarMi,
			ContractSigned:       rules.SozlesmeImzaliMi,
			IsElectronic:         rules.EIhaleMi,
			IsOwnTender:          rules.IdareKendiIhaleMi,
			ElectronicAuction:    rules.EEksiltmeYapilacakMi,
		},
		AnnouncementsSummary: AnnouncementsSummary{
			TotalCount:     len(announcements),
			Announcements:  announcements,
			TypesAvailable: AnnouncementTypesFound(announcements),
		},
		Flags: DetailFlags{
			IsAuthorityTender:       item.IhaleniIdaresiMi,
			IsWithoutAnnouncement:   item.IhaleIlansizMi,
			IsInvitationOnly:        item.IhaleyeDavetEdilenMi,
			ShowDetailDocuments:     item.IhaleDetayDokumaniGorsunMu,
			ShowDocumentDownloaders: item.DokumanIndirenlerGosterilsinMi,
		},
		DocumentCount: orZero(item.DokumanSayisi),
	}
	if truthy(info.IptalTarihi) {
		detail.CancellationInfo = &CancellationInfo{
			CancelledDate:       info.IptalTarihi,
			CancellationReason:  info.IptalNedeni,
			CancellationArticle: info.IptalMadde,
		}
	}
	return detail
}
