package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/quantforge/lobsim/log"
	"github.com/quantforge/lobsim/orderbook"
)

// csv column layout: timestamp_ns,symbol,type,side,price,quantity,order_id
const csvFieldCount = 7

// CSVSource loads a whole event file up front so the feed can be replayed
// without re-reading the file
type CSVSource struct {
	*SliceSource
	path string
}

// NewCSVSource parses the event file at path. A header row is detected and
// skipped. Row order assigns each event its sequence number
func NewCSVSource(path string) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	events, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	log.Debugf(log.DataMgr, "loaded %v events from %v", len(events), path)
	return &CSVSource{SliceSource: NewSliceSource(events), path: path}, nil
}

// Path returns the file this source was loaded from
func (c *CSVSource) Path() string {
	return c.path
}

// ParseCSV decodes market events from r, one per row
func ParseCSV(r io.Reader) ([]Event, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	var events []Event
	var sequence int64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(events) == 0 && sequence == 0 && isHeader(record) {
			continue
		}
		sequence++
		e, err := parseRecord(record, sequence)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", sequence, err)
		}
		events = append(events, e)
	}
	return events, nil
}

func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	_, err := strconv.ParseInt(record[0], 10, 64)
	return err != nil
}

func parseRecord(record []string, sequence int64) (Event, error) {
	if len(record) != csvFieldCount {
		return Event{}, fmt.Errorf("%w: expected %d fields, got %d",
			ErrParse, csvFieldCount, len(record))
	}
	ns, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return Event{}, fmt.Errorf("%w: timestamp %q", ErrParse, record[0])
	}
	eventType, err := parseEventType(record[2])
	if err != nil {
		return Event{}, err
	}
	e := Event{
		Sequence:   sequence,
		Timestamp:  time.Unix(0, ns),
		Type:       eventType,
		Instrument: record[1],
	}
	if eventType == EOD {
		return e, nil
	}
	if e.Side, err = parseSide(record[3]); err != nil {
		return Event{}, err
	}
	if e.Price, err = strconv.ParseInt(record[4], 10, 64); err != nil {
		return Event{}, fmt.Errorf("%w: price %q", ErrParse, record[4])
	}
	if e.Quantity, err = strconv.ParseInt(record[5], 10, 64); err != nil {
		return Event{}, fmt.Errorf("%w: quantity %q", ErrParse, record[5])
	}
	id, err := strconv.ParseUint(record[6], 10, 64)
	if err != nil {
		return Event{}, fmt.Errorf("%w: order id %q", ErrParse, record[6])
	}
	e.OrderID = orderbook.OrderID(id)
	return e, nil
}

func parseEventType(token string) (EventType, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "ADD":
		return Add, nil
	case "CANCEL":
		return Cancel, nil
	case "MODIFY":
		return Modify, nil
	case "TRADE":
		return Trade, nil
	case "EOD":
		return EOD, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEventType, token)
}

func parseSide(token string) (orderbook.Side, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "B", "BID", "BUY":
		return orderbook.Bid, nil
	case "S", "A", "ASK", "SELL":
		return orderbook.Ask, nil
	}
	return 0, fmt.Errorf("%w: side %q", ErrParse, token)
}
