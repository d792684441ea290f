// Package inspect looks for carrier tracking hints in every field of a raw
// order, not only in fulfillments. It backs the debug-order command.
package inspect

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"order-tracker/internal/models"
)

const carrier = "coordinadora"

// Hint sources.
const (
	SourceFulfillment   = "fulfillment"
	SourceNote          = "note"
	SourceNoteAttribute = "note_attribute"
	SourceTags          = "tags"
	SourceShippingLine  = "shipping_line"
)

var (
	noteTracking = regexp.MustCompile(`(?i)Seguimiento de Coordinadora:\s*(\d+)`)
	tagsTracking = regexp.MustCompile(`(?i)coordinadora[:\s]*(\d+)`)

	attributeHints = []string{carrier, "guia", "tracking"}
)

// Hint is a place in the order that may hold the tracking number. Value is
// set when a number was actually extracted.
type Hint struct {
	Source string `json:"source"`
	Field  string `json:"field"`
	Value  string `json:"value,omitempty"`
}

type Report struct {
	Order models.RawOrder
	Hints []Hint
}

// Inspect scans fulfillments, note, note attributes, tags and shipping lines.
func Inspect(o models.RawOrder) Report {
	var hints []Hint

	for i, f := range o.Fulfillments {
		field := fmt.Sprintf("fulfillments[%d]", i)
		if f.TrackingNumber != nil && *f.TrackingNumber != "" {
			hints = append(hints, Hint{Source: SourceFulfillment, Field: field + ".tracking_number", Value: *f.TrackingNumber})
		}
		if f.TrackingCompany != nil && containsFold(*f.TrackingCompany, carrier) {
			hints = append(hints, Hint{Source: SourceFulfillment, Field: field + ".tracking_company"})
		}
	}

	if o.Note != nil {
		if m := noteTracking.FindStringSubmatch(*o.Note); m != nil {
			hints = append(hints, Hint{Source: SourceNote, Field: "note", Value: m[1]})
		}
	}

	for _, attr := range o.NoteAttributes {
		for _, hint := range attributeHints {
			if containsFold(attr.Name, hint) {
				hints = append(hints, Hint{
					Source: SourceNoteAttribute,
					Field:  "note_attributes." + attr.Name,
					Value:  strings.TrimSpace(fmt.Sprint(attr.Value)),
				})
				break
			}
		}
	}

	if m := tagsTracking.FindStringSubmatch(o.Tags); m != nil {
		hints = append(hints, Hint{Source: SourceTags, Field: "tags", Value: m[1]})
	}

	for i, line := range o.ShippingLines {
		if containsFold(line.Title, carrier) {
			hints = append(hints, Hint{Source: SourceShippingLine, Field: fmt.Sprintf("shipping_lines[%d].title", i)})
		}
	}

	return Report{Order: o, Hints: hints}
}

// TrackingNumbers returns the hints that carry an extracted number.
func (r Report) TrackingNumbers() []Hint {
	var out []Hint
	for _, h := range r.Hints {
		if h.Value != "" && (h.Source == SourceFulfillment || h.Source == SourceNote || h.Source == SourceTags) {
			out = append(out, h)
		}
	}
	return out
}

// Print writes the field-by-field dump followed by the summary.
func (r Report) Print(w io.Writer) {
	o := r.Order
	rule := strings.Repeat("=", 60)
	sep := strings.Repeat("-", 60)

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Order: %s (ID: %d)\n", o.Name, o.ID)
	if o.Customer != nil {
		fmt.Fprintf(w, "Customer: %s %s\n", o.Customer.FirstName, o.Customer.LastName)
	}
	fmt.Fprintf(w, "Email: %s\n", o.Email)
	fmt.Fprintf(w, "Fulfillment status: %s\n", orDefault(o.FulfillmentStatus, "unfulfilled"))
	fmt.Fprintln(w, rule)

	fmt.Fprintln(w, "\nFULFILLMENTS")
	fmt.Fprintln(w, sep)
	if len(o.Fulfillments) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for i, f := range o.Fulfillments {
		fmt.Fprintf(w, "#%d\n", i+1)
		fmt.Fprintf(w, "  ID: %d\n", f.ID)
		fmt.Fprintf(w, "  Status: %s\n", orDefault(f.Status, "N/A"))
		fmt.Fprintf(w, "  Tracking number: %s\n", orDefault(f.TrackingNumber, "N/A"))
		fmt.Fprintf(w, "  Tracking company: %s\n", orDefault(f.TrackingCompany, "N/A"))
		fmt.Fprintf(w, "  Tracking URL: %s\n", orDefault(f.TrackingURL, "N/A"))
		fmt.Fprintf(w, "  Tracking URLs: %s\n", strings.Join(f.TrackingURLs, ", "))
	}

	fmt.Fprintln(w, "\nNOTE")
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "  %s\n", orDefault(o.Note, "none"))

	fmt.Fprintln(w, "\nNOTE ATTRIBUTES")
	fmt.Fprintln(w, sep)
	if len(o.NoteAttributes) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for i, attr := range o.NoteAttributes {
		fmt.Fprintf(w, "  %d. %s: %v\n", i+1, attr.Name, attr.Value)
	}

	fmt.Fprintln(w, "\nTAGS")
	fmt.Fprintln(w, sep)
	if o.Tags == "" {
		fmt.Fprintln(w, "  none")
	} else {
		fmt.Fprintf(w, "  %s\n", o.Tags)
	}

	fmt.Fprintln(w, "\nSHIPPING LINES")
	fmt.Fprintln(w, sep)
	if len(o.ShippingLines) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for i, line := range o.ShippingLines {
		fmt.Fprintf(w, "#%d\n", i+1)
		fmt.Fprintf(w, "  Title: %s\n", line.Title)
		fmt.Fprintf(w, "  Code: %s\n", orDefault(line.Code, "N/A"))
		fmt.Fprintf(w, "  Source: %s\n", orDefault(line.Source, "N/A"))
		fmt.Fprintf(w, "  Price: %s\n", line.Price)
	}

	fmt.Fprintln(w, "\n"+rule)
	fmt.Fprintln(w, "SUMMARY")
	fmt.Fprintln(w, rule)
	for _, h := range r.Hints {
		if h.Value != "" {
			fmt.Fprintf(w, "  [%s] %s = %s\n", h.Source, h.Field, h.Value)
		} else {
			fmt.Fprintf(w, "  [%s] %s mentions the carrier\n", h.Source, h.Field)
		}
	}
	if len(r.TrackingNumbers()) == 0 {
		fmt.Fprintln(w, "  no carrier tracking number found, check the saved JSON by hand")
	}
}

// SaveRaw writes the untouched upstream payload, indented, to
// dir/order-<number>-debug.json and returns the path.
func SaveRaw(dir string, o models.RawOrder) (string, error) {
	raw := o.Raw
	if len(raw) == 0 {
		data, err := json.Marshal(o)
		if err != nil {
			return "", fmt.Errorf("encode order: %w", err)
		}
		raw = data
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", fmt.Errorf("indent order json: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("order-%d-debug.json", o.OrderNumber))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
