package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantforge/lobsim/orderbook"
)

func TestSliceSource(t *testing.T) {
	t.Parallel()
	events := []Event{
		{Sequence: 1, Type: Add},
		{Sequence: 2, Type: Cancel},
	}
	s := NewSliceSource(events)

	e, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, int64(1), e.Sequence)
	e, ok = s.Next()
	require.True(t, ok)
	assert.Equal(t, int64(2), e.Sequence)
	_, ok = s.Next()
	assert.False(t, ok)

	require.NoError(t, s.Reset())
	e, ok = s.Next()
	require.True(t, ok)
	assert.Equal(t, int64(1), e.Sequence)
}

func TestParseCSV(t *testing.T) {
	t.Parallel()
	input := `timestamp_ns,symbol,type,side,price,quantity,order_id
1000,ACME,ADD,BUY,100,50,1
2000,ACME,ADD,SELL,101,30,2
3000,ACME,CANCEL,BUY,100,0,1
4000,ACME,TRADE,SELL,101,10,0
5000,ACME,EOD,,,,`

	events, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, events, 5)

	first := events[0]
	assert.Equal(t, int64(1), first.Sequence)
	assert.Equal(t, time.Unix(0, 1000), first.Timestamp)
	assert.Equal(t, Add, first.Type)
	assert.Equal(t, "ACME", first.Instrument)
	assert.Equal(t, orderbook.Bid, first.Side)
	assert.Equal(t, int64(100), first.Price)
	assert.Equal(t, int64(50), first.Quantity)
	assert.Equal(t, orderbook.OrderID(1), first.OrderID)

	assert.Equal(t, orderbook.Ask, events[1].Side)
	assert.Equal(t, Cancel, events[2].Type)
	assert.Equal(t, Trade, events[3].Type)
	assert.Equal(t, EOD, events[4].Type)
	assert.Equal(t, int64(5), events[4].Sequence)
}

func TestParseCSVNoHeader(t *testing.T) {
	t.Parallel()
	events, err := ParseCSV(strings.NewReader("1000,ACME,ADD,B,100,50,1\n"))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, orderbook.Bid, events[0].Side)
}

func TestParseCSVErrors(t *testing.T) {
	t.Parallel()
	_, err := ParseCSV(strings.NewReader("1000,ACME,WIBBLE,B,100,50,1\n"))
	assert.ErrorIs(t, err, ErrUnknownEventType)

	_, err = ParseCSV(strings.NewReader("1000,ACME,ADD,B,oops,50,1\n"))
	assert.ErrorIs(t, err, ErrParse)

	_, err = ParseCSV(strings.NewReader("1000,ACME,ADD,NORTH,100,50,1\n"))
	assert.ErrorIs(t, err, ErrParse)
}

func TestCSVSource(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.csv")
	contents := "1000,ACME,ADD,BUY,100,50,1\n2000,ACME,ADD,SELL,101,30,2\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	src, err := NewCSVSource(path)
	require.NoError(t, err)
	assert.Equal(t, path, src.Path())

	var count int
	for _, ok := src.Next(); ok; _, ok = src.Next() {
		count++
	}
	assert.Equal(t, 2, count)

	// replayable without touching the file again
	require.NoError(t, os.Remove(path))
	require.NoError(t, src.Reset())
	e, ok := src.Next()
	require.True(t, ok)
	assert.Equal(t, int64(1), e.Sequence)
}

func TestNewCSVSourceMissingFile(t *testing.T) {
	t.Parallel()
	_, err := NewCSVSource(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
