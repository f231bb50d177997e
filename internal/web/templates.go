package web

import (
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"canteen-web/internal/api"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// naiveTimeLayouts are the timestamp formats without a zone the backend is known to send
var naiveTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

const displayTimeLayout = "02.01.2006 15:04"

var funcs = template.FuncMap{
	"shortID":    shortID,
	"orderLines": orderLines,
	"stock":      stock,
	"deref":      deref,
}

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// Money renders an amount with the currency sign
func (p *Page) Money(d decimal.Decimal) string {
	return d.String() + " " + p.T("currency")
}

// DateTime renders a backend timestamp. Zoned timestamps are shown in local time, naive ones
// as sent. Unknown formats are returned unchanged.
func (p *Page) DateTime(raw string) string {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.Local().Format(displayTimeLayout)
	}
	for _, layout := range naiveTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(displayTimeLayout)
		}
	}
	return raw
}

// shortID returns the last 8 characters of an id
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

// orderLines renders the items of an order as "name x2, name x1"
func orderLines(lines []api.OrderLine) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, l.Name+" x"+strconv.Itoa(l.Qty))
	}
	return strings.Join(parts, ", ")
}

// stock renders a stock quantity; nil means unlimited and renders empty
func stock(qty *int) string {
	if qty == nil {
		return ""
	}
	return strconv.Itoa(*qty)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
