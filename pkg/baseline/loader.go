package baseline

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"qsmart/qsmart-crowd-server/pkg/config"
	"qsmart/qsmart-crowd-server/pkg/infra"
	"strconv"
	"strings"
	"time"

	"github.com/imroc/req/v3"
)

var requiredColumns = []string{"location", "day", "hour", "baseline_crowd"}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday accepts full English weekday names in any case.
func ParseWeekday(day string) (time.Weekday, error) {
	weekday, ok := weekdays[strings.ToLower(strings.TrimSpace(day))]
	if !ok {
		return 0, fmt.Errorf("invalid day[%v]", day)
	}
	return weekday, nil
}

// Load parses a baseline csv. Columns are matched by header name and the
// row order of the csv becomes the record order of the table.
func Load(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("baseline: read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("baseline: missing column[%v]", name)
		}
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("baseline: %w", err)
		}

		line, _ := reader.FieldPos(0)
		record, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("baseline: line[%v] %w", line, err)
		}
		records = append(records, record)
	}

	return NewTable(records), nil
}

func parseRow(row []string, index map[string]int) (Record, error) {
	weekday, err := ParseWeekday(row[index["day"]])
	if err != nil {
		return Record{}, err
	}

	hour, err := strconv.Atoi(strings.TrimSpace(row[index["hour"]]))
	if err != nil || hour < 0 || hour > 23 {
		return Record{}, fmt.Errorf("invalid hour[%v]", row[index["hour"]])
	}

	crowd, err := strconv.Atoi(strings.TrimSpace(row[index["baseline_crowd"]]))
	if err != nil || crowd < 0 {
		return Record{}, fmt.Errorf("invalid baseline_crowd[%v]", row[index["baseline_crowd"]])
	}

	return Record{
		Location:      strings.TrimSpace(row[index["location"]]),
		Weekday:       weekday,
		Hour:          hour,
		BaselineCrowd: crowd,
	}, nil
}

// LoadSource loads a local csv file, or fetches it when source is an
// http(s) url.
func LoadSource(ctx context.Context, source string, httpClient *req.Client) (*Table, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := httpClient.R().SetContext(ctx).Get(source)
		if err != nil {
			return nil, fmt.Errorf("baseline: fetch %v: %w", source, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("baseline: fetch %v: status[%v]", source, resp.Status)
		}
		body, err := resp.ToBytes()
		if err != nil {
			return nil, fmt.Errorf("baseline: read %v: %w", source, err)
		}
		return Load(bytes.NewReader(body))
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}
	defer f.Close()

	return Load(f)
}

func ProvideTable(config *config.Config, httpClient *req.Client, loggerFactory *infra.LoggerFactory) (*Table, error) {
	logger := loggerFactory.Create("Baseline").Sugar()

	table, err := LoadSource(context.Background(), *config.BaselineSource, httpClient)
	if err != nil {
		logger.Errorf("cannot load baseline source[%v] %v", *config.BaselineSource, err)
		return nil, err
	}

	logger.Infof("loaded baseline source[%v] records[%v] locations[%v]", *config.BaselineSource, table.Len(), len(table.Locations()))
	return table, nil
}
