package model

// FeatureCatalog lists the equipment tags a draft may carry in Features.
var FeatureCatalog = []string{
	"ABS",
	"Abstandswarner",
	"Allradantrieb",
	"Allwetterreifen",
	"Android Auto",
	"Apple CarPlay",
	"Armlehne",
	"Beheizbares Lenkrad",
	"Bluetooth",
	"Bordcomputer",
	"Elektr. Fensterheber",
	"Freisprecheinrichtung",
	"Head-Up Display",
	"Isofix",
	"Navigationssystem",
	"Sitzheizung",
	"USB",
	"WLAN / WiFi Hotspot",
}

// ExtraCatalog lists the optional-extra tags a draft may carry in Extras.
var ExtraCatalog = []string{
	"Abgedunkelte Scheiben",
	"Klimaanlage",
	"Klimaautomatik",
	"Ledersitze",
	"Metallic-Lackierung",
	"Panoramadach",
	"Parksensoren",
	"Rückfahrkamera",
	"Schiebedach",
	"Soundsystem",
	"Sportfahrwerk",
	"Xenon-Scheinwerfer",
}

var (
	featureSet = toSet(FeatureCatalog)
	extraSet   = toSet(ExtraCatalog)
)

// IsFeature reports whether tag belongs to FeatureCatalog.
func IsFeature(tag string) bool {
	_, ok := featureSet[tag]
	return ok
}

// IsExtra reports whether tag belongs to ExtraCatalog.
func IsExtra(tag string) bool {
	_, ok := extraSet[tag]
	return ok
}

func toSet(items []string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}

// dedupe drops repeated tags, keeping the first occurrence of each.
// dedupe never returns nil: the backend rejects null tag lists.
func dedupe(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(tags))
	out := tags[:0:0]
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
