package ekap

import "fmt"

// Code pairs an identifier with its human readable description.
type Code struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// Method is a tender procedure keyed by its textual code.
type Method struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// TenderTypes lists the values accepted by the ihaleTuruIdList filter.
var TenderTypes = []Code{
	{ID: 1, Description: "Mal (Goods/Equipment procurement)"},
	{ID: 2, Description: "Yapım (Construction/Infrastructure projects)"},
	{ID: 3, Description: "Hizmet (Services procurement)"},
	{ID: 4, Description: "Danışmanlık (Consultancy services)"},
}

// TenderStatuses lists the values accepted by the ihaleDurumIdList filter.
var TenderStatuses = []Code{
	{ID: 1, Description: "İptal Edilmiş (Cancelled)"},
	{ID: 2, Description: "Teklifler Değerlendiriliyor (Bids under evaluation)"},
	{ID: 3, Description: "Teklif Vermeye Açık (Open for bidding)"},
	{ID: 4, Description: "Teklif Değerlendirme Tamamlanmış (Bid evaluation completed)"},
	{ID: 5, Description: "Sözleşme İmzalanmış (Contract signed)"},
}

var TenderMethods = []Method{
	{Code: "Açık", Description: "Açık İhale Usulü (Open tender method)"},
	{Code: "Belli İstekliler Arasında", Description: "Belli İstekliler Arasında İhale (Restricted tender)"},
	{Code: "Pazarlık", Description: "Pazarlık Usulü (Negotiated procedure)"},
	{Code: "Tasarım Yarışması", Description: "Tasarım Yarışması (Design competition)"},
}

var ProposalTypes = []Code{
	{ID: 1, Description: "Götürü-Anahtar Teslimi Götürü"},
	{ID: 2, Description: "Birim Fiyat"},
	{ID: 3, Description: "Karma"},
}

// AnnouncementTypes lists the values accepted by the ihaleIlanTuruIdList filter.
// These ids are not the same as the ilanTip codes carried by announcement payloads.
var AnnouncementTypes = []Code{
	{ID: 1, Description: "Ön İlan"},
	{ID: 2, Description: "İhale İlanı"},
	{ID: 3, Description: "Sonuç İlanı"},
	{ID: 4, Description: "İptal İlanı"},
	{ID: 5, Description: "Ön Yeterlik İlanı"},
	{ID: 6, Description: "Düzeltme İlanı"},
}

// announcementLabels maps the ilanTip code of an announcement payload to its label.
var announcementLabels = map[string]string{
	"1": "Ön İlan",
	"2": "İhale İlanı",
	"3": "İptal İlanı",
	"4": "Sonuç İlanı",
	"5": "Ön Yeterlik İlanı",
	"6": "Düzeltme İlanı",
}

// AnnouncementLabel returns the label for an ilanTip code, or "Type <code>" when unknown.
func AnnouncementLabel(code string) string {
	if label, ok := announcementLabels[code]; ok {
		return label
	}
	return fmt.Sprintf("Type %s", code)
}

// ItemTypeLegend describes the kalemTuru values of OKAS codes.
var ItemTypeLegend = map[int]string{
	1: "Mal (Goods)",
	2: "Hizmet (Service)",
	3: "Yapım (Construction)",
}

// ItemTypeDescription returns the legend entry for an OKAS item type.
func ItemTypeDescription(itemType int) string {
	if desc, ok := ItemTypeLegend[itemType]; ok {
		return desc
	}
	return "Unknown"
}

// ProvinceIDsForPlates translates plate numbers into EKAP province ids.
// Unknown plates are dropped. The result is nil, never empty, when nothing maps,
// so callers do not accidentally send a filter that matches nothing.
func ProvinceIDsForPlates(plates []int) []int {
	var ids []int
	for _, plate := range plates {
		if id, ok := PlateToAPIID[plate]; ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return ids
}

// ProvinceName returns the name of the province with the given EKAP id.
func ProvinceName(id int) (string, bool) {
	name, ok := Provinces[id]
	return name, ok
}

// PlateToAPIID maps conventional plate numbers (1-81) to the province ids used by EKAP.
var PlateToAPIID = map[int]int{
	1:  245, // ADANA
	2:  246, // ADIYAMAN
	3:  247, // AFYONKARAHİSAR
	4:  248, // AĞRI
	5:  250, // AMASYA
	6:  251, // ANKARA
	7:  252, // ANTALYA
	8:  254, // ARTVİN
	9:  255, // AYDIN
	10: 256, // BALIKESİR
	11: 260, // BİLECİK
	12: 261, // BİNGÖL
	13: 262, // BİTLİS
	14: 263, // BOLU
	15: 264, // BURDUR
	16: 265, // BURSA
	17: 266, // ÇANAKKALE
	18: 267, // ÇANKIRI
	19: 268, // ÇORUM
	20: 269, // DENİZLİ
	21: 270, // DİYARBAKIR
	22: 272, // EDİRNE
	23: 273, // ELAZIĞ
	24: 274, // ERZİNCAN
	25: 275, // ERZURUM
	26: 276, // ESKİŞEHİR
	27: 277, // GAZİANTEP
	28: 278, // GİRESUN
	29: 279, // GÜMÜŞHANE
	30: 280, // HAKKARİ
	31: 281, // HATAY
	32: 283, // ISPARTA
	33: 302, // MERSİN
	34: 284, // İSTANBUL
	35: 285, // İZMİR
	36: 289, // KARS
	37: 290, // KASTAMONU
	38: 291, // KAYSERİ
	39: 293, // KIRKLARELİ
	40: 294, // KIRŞEHİR
	41: 296, // KOCAELİ
	42: 297, // KONYA
	43: 298, // KÜTAHYA
	44: 299, // MALATYA
	45: 300, // MANİSA
	46: 286, // KAHRAMANMARAŞ
	47: 301, // MARDİN
	48: 303, // MUĞLA
	49: 304, // MUŞ
	50: 305, // NEVŞEHİR
	51: 306, // NİĞDE
	52: 307, // ORDU
	53: 309, // RİZE
	54: 310, // SAKARYA
	55: 311, // SAMSUN
	56: 312, // SİİRT
	57: 313, // SİNOP
	58: 314, // SİVAS
	59: 317, // TEKİRDAĞ
	60: 318, // TOKAT
	61: 319, // TRABZON
	62: 320, // TUNCELİ
	63: 315, // ŞANLIURFA
	64: 321, // UŞAK
	65: 322, // VAN
	66: 324, // YOZGAT
	67: 325, // ZONGULDAK
	68: 249, // AKSARAY
	69: 259, // BAYBURT
	70: 288, // KARAMAN
	71: 292, // KIRIKKALE
	72: 258, // BATMAN
	73: 316, // ŞIRNAK
	74: 257, // BARTIN
	75: 253, // ARDAHAN
	76: 282, // IĞDIR
	77: 323, // YALOVA
	78: 287, // KARABÜK
	79: 295, // KİLİS
	80: 308, // OSMANİYE
	81: 271, // DÜZCE
}

// Provinces maps EKAP province ids to province names.
var Provinces = map[int]string{
	245: "ADANA",
	246: "ADIYAMAN",
	247: "AFYONKARAHİSAR",
	248: "AĞRI",
	249: "AKSARAY",
	250: "AMASYA",
	251: "ANKARA",
	252: "ANTALYA",
	253: "ARDAHAN",
	254: "ARTVİN",
	255: "AYDIN",
	256: "BALIKESİR",
	257: "BARTIN",
	258: "BATMAN",
	259: "BAYBURT",
	260: "BİLECİK",
	261: "BİNGÖL",
	262: "BİTLİS",
	263: "BOLU",
	264: "BURDUR",
	265: "BURSA",
	266: "ÇANAKKALE",
	267: "ÇANKIRI",
	268: "ÇORUM",
	269: "DENİZLİ",
	270: "DİYARBAKIR",
	271: "DÜZCE",
	272: "EDİRNE",
	273: "ELAZIĞ",
	274: "ERZİNCAN",
	275: "ERZURUM",
	276: "ESKİŞEHİR",
	277: "GAZİANTEP",
	278: "GİRESUN",
	279: "GÜMÜŞHANE",
	280: "HAKKARİ",
	281: "HATAY",
	282: "IĞDIR",
	283: "ISPARTA",
	284: "İSTANBUL",
	285: "İZMİR",
	286: "KAHRAMANMARAŞ",
	287: "KARABÜK",
	288: "KARAMAN",
	289: "KARS",
	290: "KASTAMONU",
	291: "KAYSERİ",
	292: "KIRIKKALE",
	293: "KIRKLARELİ",
	294: "KIRŞEHİR",
	295: "KİLİS",
	296: "KOCAELİ",
	297: "KONYA",
	298: "KÜTAHYA",
	299: "MALATYA",
	300: "MANİSA",
	301: "MARDİN",
	302: "MERSİN",
	303: "MUĞLA",
	304: "MUŞ",
	305: "NEVŞEHİR",
	306: "NİĞDE",
	307: "ORDU",
	308: "OSMANİYE",
	309: "RİZE",
	310: "SAKARYA",
	311: "SAMSUN",
	312: "SİİRT",
	313: "SİNOP",
	314: "SİVAS",
	315: "ŞANLIURFA",
	316: "ŞIRNAK",
	317: "TEKİRDAĞ",
	318: "TOKAT",
	319: "TRABZON",
	320: "TUNCELİ",
	321: "UŞAK",
	322: "VAN",
	323: "YALOVA",
	324: "YOZGAT",
	325: "ZONGULDAK",
}
