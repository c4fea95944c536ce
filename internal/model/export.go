package model

// Export row types.
const (
	RowTypeEmail    = "email"
	RowTypePhone    = "phone"
	RowTypeWhatsApp = "whatsapp"
	RowTypeSocial   = "social"
	RowTypeName     = "name"
	RowTypeAddress  = "address"
)

// ExportRow is one record flattened for spreadsheets.
type ExportRow struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Formatted string `json:"formatted"`
	Platform  string `json:"platform"`
	Link      string `json:"link"`
	Source    string `json:"source"`
}

// ExportSummary counts records per category.
type ExportSummary struct {
	Emails      int `json:"emails"`
	Phones      int `json:"phones"`
	WhatsApp    int `json:"whatsapp"`
	SocialLinks int `json:"social_links"`
	Names       int `json:"names"`
	Addresses   int `json:"addresses"`
}

// Export is the spreadsheet-friendly rendering of an AggregatedResult.
type Export struct {
	Success      bool          `json:"success"`
	SourceURL    string        `json:"source_url"`
	PagesScraped int           `json:"pages_scraped"`
	TotalItems   int           `json:"total_items"`
	Rows         []ExportRow   `json:"rows"`
	Summary      ExportSummary `json:"summary"`
	Error        string        `json:"error,omitempty"`
}

// ExportHeader is the column order used by CSV output.
var ExportHeader = []string{"type", "value", "formatted", "platform", "link", "source"}

// Fields returns the row's values in ExportHeader order.
func (r ExportRow) Fields() []string {
	return []string{r.Type, r.Value, r.Formatted, r.Platform, r.Link, r.Source}
}

// NewExport flattens r into rows. Rows are ordered by category (emails,
// phones, whatsapp, socials by platform name, names, addresses) and by
// position within each category.
func NewExport(r *AggregatedResult) *Export {
	src := r.SourceURL
	rows := make([]ExportRow, 0, r.TotalItems())

	for _, email := range r.Emails {
		rows = append(rows, ExportRow{
			Type:      RowTypeEmail,
			Value:     email,
			Formatted: email,
			Link:      "mailto:" + email,
			Source:    src,
		})
	}

	for _, phone := range r.Phones {
		formatted := phone.Formatted
		if formatted == "" {
			formatted = phone.Original
		}
		rows = append(rows, ExportRow{
			Type:      RowTypePhone,
			Value:     phone.E164,
			Formatted: formatted,
			Link:      "tel:" + phone.E164,
			Source:    src,
		})
	}

	for _, wa := range r.WhatsApp {
		rows = append(rows, ExportRow{
			Type:      RowTypeWhatsApp,
			Value:     wa.Number,
			Formatted: wa.Number,
			Platform:  "whatsapp",
			Link:      wa.Link,
			Source:    src,
		})
	}

	for _, platform := range r.Platforms() {
		for _, profile := range r.SocialLinks[platform] {
			rows = append(rows, ExportRow{
				Type:      RowTypeSocial,
				Value:     profile.Username,
				Formatted: "@" + profile.Username,
				Platform:  platform,
				Link:      profile.URL,
				Source:    src,
			})
		}
	}

	for _, name := range r.Names {
		rows = append(rows, ExportRow{Type: RowTypeName, Value: name, Formatted: name, Source: src})
	}

	for _, addr := range r.Addresses {
		rows = append(rows, ExportRow{Type: RowTypeAddress, Value: addr, Formatted: addr, Source: src})
	}

	return &Export{
		Success:      r.Success,
		SourceURL:    src,
		PagesScraped: r.PagesScraped,
		TotalItems:   len(rows),
		Rows:         rows,
		Summary: ExportSummary{
			Emails:      len(r.Emails),
			Phones:      len(r.Phones),
			WhatsApp:    len(r.WhatsApp),
			SocialLinks: r.SocialCount(),
			Names:       len(r.Names),
			Addresses:   len(r.Addresses),
		},
		Error: r.Error,
	}
}
