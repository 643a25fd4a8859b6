package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/sirupsen/logrus"

	"househunters/internal/metrics"
	"househunters/internal/repositories"
	"househunters/internal/utils"
	"househunters/listing"
)

// BrochureService renders a one-page PDF flyer for a listing.
type BrochureService struct {
	Repo      repositories.PropertyRepository
	Log       logrus.FieldLogger
	RequestID string
	// Loader replaces the repository lookup in tests.
	Loader func(ctx context.Context, id int64) (listing.Property, error)
	Now    func() time.Time
}

func (s BrochureService) load(ctx context.Context, id int64) (listing.Property, error) {
	if s.Loader != nil {
		return s.Loader(ctx, id)
	}
	return s.Repo.Get(ctx, id)
}

// Generate returns the PDF bytes and a download file name.
func (s BrochureService) Generate(ctx context.Context, id int64) ([]byte, string, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	data, name, err := buildBrochurePDF(p, now())
	if err != nil {
		return nil, "", err
	}
	metrics.BrochuresGenerated.Inc()
	utils.LogEvent(s.Log, s.RequestID, "brochure", "generate", fmt.Sprintf("property_id=%d bytes=%d", id, len(data)))
	return data, name, nil
}

func buildBrochurePDF(p listing.Property, printed time.Time) ([]byte, string, error) {
	card := listing.NewCard(p)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(p.Title), false)
	pdf.SetAuthor("House Hunters", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.MultiCell(0, 10, tr(safe(p.Title, "Untitled listing")), "", "", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, tr(safe(p.Location, "-")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 9, tr(card.PriceLabel+card.PricePeriod))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Type         : %s", titleWord(string(p.PropertyType))),
		fmt.Sprintf("Listing      : %s", listingLabel(p.ListingType)),
		fmt.Sprintf("Bedrooms     : %d", p.Bedrooms),
		fmt.Sprintf("Bathrooms    : %d", p.Bathrooms),
		fmt.Sprintf("Area         : %s", safe(card.AreaLabel, "-")),
		fmt.Sprintf("Availability : %s", titleWord(string(p.Availability))),
	}
	if p.HasCoordinates() {
		lines = append(lines, fmt.Sprintf("Coordinates  : %.5f, %.5f", *p.Latitude, *p.Longitude))
	}
	for _, l := range lines {
		pdf.Cell(0, 7, tr(l))
		pdf.Ln(7)
	}

	if len(p.Amenities) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Amenities")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		names := make([]string, 0, len(p.Amenities))
		for _, a := range p.Amenities {
			names = append(names, a.Name)
		}
		pdf.MultiCell(0, 6, tr(strings.Join(names, "  |  ")), "", "", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Description")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(safe(p.Description, "-")), "", "", false)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, fmt.Sprintf("Listing #%d. Printed %s. Prices and availability may change.",
		p.ID, printed.Format("2006-01-02 15:04")), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("LISTING_%d_%s.pdf", p.ID, utils.SafeFilenamePart(truncate(p.Title, 40)))
	return buf.Bytes(), filename, nil
}

func listingLabel(t listing.ListingType) string {
	if t == listing.ListingRent {
		return "For Rent"
	}
	return "For Sale"
}

func titleWord(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "-"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
