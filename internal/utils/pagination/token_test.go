package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeEntryToken(t *testing.T) {
	entryDate := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)

	token := EncodeEntryToken(entryDate, 7)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedNo, err := DecodeEntryToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, entryDate, decodedDate, "Entry date should match after decode")
	assert.Equal(t, 7, decodedNo, "Entry no should match after decode")

	// Zero values round-trip too.
	zeroToken := EncodeEntryToken(time.Time{}, 0)
	decodedDate, decodedNo, err = DecodeEntryToken(zeroToken)
	assert.NoError(t, err)
	assert.True(t, decodedDate.IsZero())
	assert.Equal(t, 0, decodedNo)
}

func TestDecodeEntryTokenError(t *testing.T) {
	_, _, err := DecodeEntryToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	// Base64 of a date with no separator.
	_, _, err = DecodeEntryToken("MjAyMy0wNS0xNVQwMDowMDowMFo=")
	assert.Error(t, err, "Should return an error for missing separator")
	assert.Contains(t, err.Error(), "split")

	// Base64 of "notadate|3".
	_, _, err = DecodeEntryToken("bm90YWRhdGV8Mw==")
	assert.Error(t, err, "Should return an error for invalid date")
	assert.Contains(t, err.Error(), "date parse")
}

func TestMultiFieldToken(t *testing.T) {
	token := EncodeMultiFieldToken("152", "2")
	fields, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err)
	assert.Equal(t, []string{"152", "2"}, fields)

	_, err = DecodeMultiFieldToken("not base64!")
	assert.Error(t, err)
}
