package spacedrep

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var rec Record
	rec.apply(true, t0)
	rec.apply(true, t0.Add(time.Hour))
	idiom := Record{TotalAttempts: 1, LastAttemptAt: t0}
	idiom.derive()
	p := Progress{"日": rec, "一帆风顺": idiom}

	data, err := EncodeProgress(p)
	require.NoError(t, err)

	got, err := DecodeProgress(data)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got["日"].Round)
	assert.True(t, got["日"].NextReviewAt.Equal(rec.NextReviewAt))
	assert.Equal(t, 1, got["一帆风顺"].TotalAttempts)
}

func TestEncodeProgress_Nil(t *testing.T) {
	data, err := EncodeProgress(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestDecodeProgress_Shape(t *testing.T) {
	data := []byte(`{"3+5":{"totalAttempts":3,"correctAttempts":2,"round":1,` +
		`"lastAttemptAt":"2025-03-01T09:00:00Z","nextReviewAt":"2025-03-01T09:30:00Z"}}`)

	p, err := DecodeProgress(data)
	require.NoError(t, err)
	rec := p["3+5"]
	assert.Equal(t, 3, rec.TotalAttempts)
	assert.Equal(t, 2, rec.CorrectAttempts)
	assert.Equal(t, 1, rec.Round)
	assert.True(t, rec.LastAttemptAt.Equal(t0))
}

func TestDecodeProgress_RederivesNextReview(t *testing.T) {
	// A stored nextReviewAt that disagrees with the ladder is ignored.
	data := []byte(`{"日":{"totalAttempts":1,"correctAttempts":1,"round":1,` +
		`"lastAttemptAt":"2025-03-01T09:00:00Z","nextReviewAt":"2030-01-01T00:00:00Z"}}`)

	p, err := DecodeProgress(data)
	require.NoError(t, err)
	assert.True(t, p["日"].NextReviewAt.Equal(t0.Add(30*time.Minute)))
}

func TestDecodeProgress_NotAnObject(t *testing.T) {
	for _, raw := range []string{`{broken`, `[1,2]`, `"hello"`, ``} {
		p, err := DecodeProgress([]byte(raw))
		assert.Error(t, err, raw)
		assert.NotNil(t, p, raw)
		assert.Empty(t, p, raw)
	}
}

func TestDecodeProgress_DropsMalformedEntries(t *testing.T) {
	data := []byte(`{
		"ok":       {"totalAttempts":1,"correctAttempts":1,"round":1,"lastAttemptAt":"2025-03-01T09:00:00Z"},
		"missing":  {"totalAttempts":1,"round":1},
		"negative": {"totalAttempts":-1,"correctAttempts":0,"round":0,"lastAttemptAt":"2025-03-01T09:00:00Z"},
		"toohigh":  {"totalAttempts":1,"correctAttempts":1,"round":10,"lastAttemptAt":"2025-03-01T09:00:00Z"},
		"fraction": {"totalAttempts":1.5,"correctAttempts":1,"round":1,"lastAttemptAt":"2025-03-01T09:00:00Z"},
		"badtime":  {"totalAttempts":1,"correctAttempts":1,"round":1,"lastAttemptAt":"yesterday"},
		"overcount":{"totalAttempts":1,"correctAttempts":2,"round":1,"lastAttemptAt":"2025-03-01T09:00:00Z"},
		"null":     null,
		"":         {"totalAttempts":1,"correctAttempts":1,"round":1,"lastAttemptAt":"2025-03-01T09:00:00Z"}
	}`)

	p, err := DecodeProgress(data)
	require.Error(t, err)
	assert.Len(t, p, 1)
	assert.Contains(t, p, "ok")

	var dropped []string
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var mre *MalformedRecordError
		require.True(t, errors.As(e, &mre))
		dropped = append(dropped, mre.Item)
	}
	assert.ElementsMatch(t,
		[]string{"missing", "negative", "toohigh", "fraction", "badtime", "overcount", "null", ""},
		dropped)
}
