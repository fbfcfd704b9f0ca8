package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(1990, time.March, 15)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1990-03-15"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, parsed.Equal(d.Time))
}

func TestDate_UnmarshalInvalid(t *testing.T) {
	var d Date
	err := json.Unmarshal([]byte(`"15-03-1990"`), &d)
	require.Error(t, err)
}

func TestDate_UnmarshalNull(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())
}

func TestDateOf_TruncatesTime(t *testing.T) {
	d := DateOf(time.Date(2024, time.July, 1, 23, 59, 58, 0, time.UTC))
	assert.Equal(t, "2024-07-01", d.String())
}

func TestNotFoundError_Message(t *testing.T) {
	err := NewNotFoundError("Contact", "7")
	assert.Equal(t, "Contact with id: 7 doesn't exist", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDuplicateEmailError_Message(t *testing.T) {
	err := NewDuplicateEmailError("jan@example.com")
	assert.Equal(t, "Contact with email 'jan@example.com' already exists.", err.Error())
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}
