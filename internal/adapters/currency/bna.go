package currency

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
)

const userAgent = "Mozilla/5.0 (compatible; mishabitos-api/1.0)"

// BNAScraper reads the banknote dollar quote from the Banco de la Nación
// Argentina public page.
type BNAScraper struct {
	url    string
	client *http.Client
}

func NewBNAScraper(url string, client *http.Client) *BNAScraper {
	if client == nil {
		client = &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        4,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     30 * time.Second,
			},
		}
	}
	return &BNAScraper{url: url, client: client}
}

func (s *BNAScraper) FetchDollar(ctx context.Context) (*domain.DollarRate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bna: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bna: unexpected status %d", resp.StatusCode)
	}

	return parseDollar(io.LimitReader(resp.Body, 2<<20))
}

// parseDollar looks in the banknote table ("#billetes") for the row whose
// first cell names the US dollar; the next two cells are buy and sell.
func parseDollar(r io.Reader) (*domain.DollarRate, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("bna: parse error: %w", err)
	}

	var (
		rate  *domain.DollarRate
		inErr error
	)
	doc.Find("#billetes table tbody tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return true
		}
		name := strings.ToLower(strings.TrimSpace(cells.Eq(0).Text()))
		if !strings.Contains(name, "dolar") && !strings.Contains(name, "dólar") {
			return true
		}

		buy, err := parseArgentineNumber(cells.Eq(1).Text())
		if err != nil {
			inErr = err
			return false
		}
		sell, err := parseArgentineNumber(cells.Eq(2).Text())
		if err != nil {
			inErr = err
			return false
		}

		rate = &domain.DollarRate{CompraBillete: buy, VentaBillete: sell}
		return false
	})

	if inErr != nil {
		return nil, inErr
	}
	if rate == nil {
		return nil, fmt.Errorf("bna: dollar row not found")
	}
	return rate, nil
}

// parseArgentineNumber reads "1.234,50" style numbers.
func parseArgentineNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bna: bad number %q: %w", s, err)
	}
	return v, nil
}
