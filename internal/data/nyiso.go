package data

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"virtual-battery/internal/model"

	"github.com/rs/zerolog"
)

// DataTypeDAMLBMP is the day-ahead market location-based marginal price
// dataset, the one the simulation prices against.
const DataTypeDAMLBMP = "damlbmp"

// Zones lists the NYISO load zones usable with zone-grouped datasets.
var Zones = []string{
	"CAPITL", "CENTRL", "DUNWOD", "GENESE", "HUD VL",
	"LONGIL", "MHK VL", "MILLWD", "N.Y.C.", "NORTH", "WEST",
}

// NYISOClient downloads public NYISO CSV archives. Archives are published
// per month as zip files of daily CSVs, e.g.
// http://mis.nyiso.com/public/csv/damlbmp/20180201damlbmp_zone_csv.zip
type NYISOClient struct {
	BaseURL string
	Client  *http.Client

	log zerolog.Logger
}

// NYISOError represents a failed archive download.
type NYISOError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *NYISOError) Error() string {
	return fmt.Sprintf("%s (status %d, url %s)", e.Message, e.StatusCode, e.URL)
}

// PricePoint is one hourly price from a NYISO archive.
type PricePoint struct {
	Time       time.Time
	LBMPPerMWh float64
}

// NewNYISOClient creates a client for the public NYISO archive server.
// If baseURL is empty, defaults to "http://mis.nyiso.com/public/csv".
func NewNYISOClient(baseURL string, log zerolog.Logger) *NYISOClient {
	if baseURL == "" {
		baseURL = "http://mis.nyiso.com/public/csv"
	}
	return &NYISOClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 60 * time.Second},
		log:     log,
	}
}

// AddPrices joins NYISO day-ahead prices onto an hourly usage series,
// downloading every month the series spans. Every hour of the series must
// find a matching price; a gap in the published data is an error, not
// something the simulation will interpolate over.
func (c *NYISOClient) AddPrices(series model.Series, dataType, zone string, loc *time.Location) (model.Series, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no series data")
	}
	if dataType == DataTypeDAMLBMP && zone == "" {
		return nil, fmt.Errorf("zone is required for data type %q", dataType)
	}

	prices := map[time.Time]float64{}
	for month := monthOf(series[0].Time); !month.After(monthOf(series[len(series)-1].Time)); month = month.AddDate(0, 1, 0) {
		points, err := c.FetchMonth(dataType, month, zone, loc)
		if err != nil {
			return nil, err
		}
		for _, p := range points {
			prices[p.Time] = p.LBMPPerMWh
		}
	}

	joined := make(model.Series, len(series))
	copy(joined, series)
	for i := range joined {
		lbmp, ok := prices[joined[i].Time]
		if !ok {
			return nil, fmt.Errorf("no %s price for %s (zone %s)",
				dataType, joined[i].Time.Format(time.RFC3339), zone)
		}
		joined[i].LBMPPerMWh = lbmp
	}
	return joined, nil
}

// FetchMonth downloads and parses one monthly archive. month is truncated
// to the first of the month. Responses may be served from the development
// cache when it is enabled.
func (c *NYISOClient) FetchMonth(dataType string, month time.Time, zone string, loc *time.Location) ([]PricePoint, error) {
	month = monthOf(month)

	cache := GetCache()
	key := MonthCacheKey(dataType, month, zone)
	if cache != nil {
		if points, found := cache.Get(key); found {
			c.log.Debug().Str("key", key).Int("points", len(points)).Msg("nyiso cache hit")
			return points, nil
		}
	}

	url := c.archiveURL(dataType, month, zone)
	c.log.Info().Str("url", url).Msg("downloading nyiso archive")

	start := time.Now()
	resp, err := c.Client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching nyiso archive: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &NYISOError{
			StatusCode: resp.StatusCode,
			URL:        url,
			Message:    "nyiso archive request failed",
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading nyiso archive: %w", err)
	}
	c.log.Info().
		Str("url", url).
		Int("bytes", len(raw)).
		Dur("duration", time.Since(start)).
		Msg("downloaded nyiso archive")

	points, err := parseArchive(raw, zone, loc)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}

	if cache != nil {
		cache.Set(key, points)
	}
	return points, nil
}

func (c *NYISOClient) archiveURL(dataType string, month time.Time, zone string) string {
	name := month.Format("20060102") + dataType
	if zone != "" {
		name += "_zone"
	}
	return fmt.Sprintf("%s/%s/%s_csv.zip", c.BaseURL, dataType, name)
}

// parseArchive unpacks a monthly zip of daily CSVs and extracts the hourly
// prices for one zone. Daily files carry Time Stamp, Name, PTID and
// LBMP ($/MWHr) columns.
func parseArchive(raw []byte, zone string, loc *time.Location) ([]PricePoint, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("opening zip: %w", err)
	}

	var points []PricePoint
	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", zf.Name, err)
		}
		filePoints, err := parseDailyCSV(rc, zone, loc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", zf.Name, err)
		}
		points = append(points, filePoints...)
	}
	return points, nil
}

func parseDailyCSV(r io.Reader, zone string, loc *time.Location) ([]PricePoint, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, err
	}
	timeCol, nameCol, lbmpCol := -1, -1, -1
	for i, name := range header {
		switch name {
		case "Time Stamp":
			timeCol = i
		case "Name":
			nameCol = i
		case "LBMP ($/MWHr)":
			lbmpCol = i
		}
	}
	if timeCol < 0 || lbmpCol < 0 {
		return nil, fmt.Errorf("unexpected columns %v", header)
	}

	var points []PricePoint
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if nameCol >= 0 && zone != "" && rec[nameCol] != zone {
			continue
		}
		t, err := time.ParseInLocation("01/02/2006 15:04", rec[timeCol], loc)
		if err != nil {
			return nil, fmt.Errorf("bad time stamp %q: %w", rec[timeCol], err)
		}
		lbmp, err := strconv.ParseFloat(rec[lbmpCol], 64)
		if err != nil {
			return nil, fmt.Errorf("bad LBMP %q at %s: %w", rec[lbmpCol], rec[timeCol], err)
		}
		points = append(points, PricePoint{Time: t, LBMPPerMWh: lbmp})
	}
	return points, nil
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
