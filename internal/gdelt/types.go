package gdelt

// Mode selects the response shape returned by the API.
type Mode string

const (
	ModeArtList               Mode = "ArtList"
	ModeTimelineVol           Mode = "TimelineVol"
	ModeTimelineTone          Mode = "TimelineTone"
	ModeTimelineLang          Mode = "TimelineLang"
	ModeTimelineSourceCountry Mode = "TimelineSourceCountry"
	ModeToneChart             Mode = "ToneChart"
	// ModePointData is the only GEO mode that returns GeoJSON; the country
	// and ADM1 modes render HTML.
	ModePointData Mode = "PointData"
)

// Output formats forced by the clients. The GEO value is case-sensitive.
const (
	DocFormat = "json"
	GeoFormat = "GeoJSON"
)

// DocQuery holds DOC 2.0 request parameters. Zero values are omitted.
type DocQuery struct {
	Query          string
	Mode           Mode
	Timespan       string
	StartDateTime  string
	EndDateTime    string
	MaxRecords     int
	Sort           string
	TimelineSmooth int
}

// Params converts q to query parameters in the API's casing.
func (q DocQuery) Params() Params {
	return Params{
		"query":          q.Query,
		"mode":           string(q.Mode),
		"timespan":       optString(q.Timespan),
		"startdatetime":  optString(q.StartDateTime),
		"enddatetime":    optString(q.EndDateTime),
		"maxrecords":     optInt(q.MaxRecords),
		"sort":           optString(q.Sort),
		"timelinesmooth": optInt(q.TimelineSmooth),
	}
}

// GeoQuery holds GEO 2.0 request parameters. Zero values are omitted.
type GeoQuery struct {
	Query         string
	Mode          Mode
	Timespan      string
	StartDateTime string
	EndDateTime   string
	MaxPoints     int
	GeoRes        int
	SortBy        string
}

// Params converts q to query parameters in the API's casing.
func (q GeoQuery) Params() Params {
	return Params{
		"query":         q.Query,
		"mode":          string(q.Mode),
		"timespan":      optString(q.Timespan),
		"startdatetime": optString(q.StartDateTime),
		"enddatetime":   optString(q.EndDateTime),
		"maxpoints":     optInt(q.MaxPoints),
		"geores":        optInt(q.GeoRes),
		"sortby":        optString(q.SortBy),
	}
}

func optString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func optInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

// Article is one entry of an ArtList response.
type Article struct {
	URL           string `json:"url"`
	URLMobile     string `json:"url_mobile"`
	Title         string `json:"title"`
	SeenDate      string `json:"seendate"`
	SocialImage   string `json:"socialimage"`
	Domain        string `json:"domain"`
	Language      string `json:"language"`
	SourceCountry string `json:"sourcecountry"`
}

// TimelineEntry is one data point of a timeline series.
type TimelineEntry struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// TimelineSeries is a named series as returned by the Timeline* modes.
type TimelineSeries struct {
	Series string          `json:"series"`
	Data   []TimelineEntry `json:"data"`
}

// TopArticle is a sample article attached to a tone bin.
type TopArticle struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// ToneBin is one raw histogram bucket from the ToneChart mode.
type ToneBin struct {
	Bin     int          `json:"bin"`
	Count   int          `json:"count"`
	TopArts []TopArticle `json:"toparts,omitempty"`
}

// ToneChartEntry is a normalized histogram bucket keyed by tone.
type ToneChartEntry struct {
	Tone  int `json:"tone"`
	Count int `json:"count"`
}

// GeoGeometry is a GeoJSON point; Coordinates are [longitude, latitude].
type GeoGeometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// GeoProperties carries the PointData attributes of a location.
type GeoProperties struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	ShareImage string `json:"shareimage,omitempty"`
	HTML       string `json:"html,omitempty"`
}

// GeoFeature is one location of a PointData FeatureCollection.
type GeoFeature struct {
	Type       string        `json:"type"`
	Geometry   GeoGeometry   `json:"geometry"`
	Properties GeoProperties `json:"properties"`
}

// ImageInfo describes an image associated with coverage. Only URL is
// populated from article social images; the remaining fields come from the
// visual knowledge graph and stay absent here.
type ImageInfo struct {
	URL      string   `json:"url"`
	WebCount *int     `json:"webcount,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	WebTags  []string `json:"webtags,omitempty"`
	OCR      string   `json:"ocr,omitempty"`
	FaceTone *float64 `json:"facetone,omitempty"`
	NumFaces *int     `json:"numfaces,omitempty"`
}
