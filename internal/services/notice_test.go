package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotices_DrainClears(t *testing.T) {
	n := NewNotices()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return fixed }

	assert.Equal(t, []Notice{}, n.Drain())

	n.Post("first")
	n.Post("second")

	got := n.Drain()
	assert.Equal(t, []Notice{{Message: "first", At: fixed}, {Message: "second", At: fixed}}, got)
	assert.Empty(t, n.Drain())
}

func TestNotices_PostOnce(t *testing.T) {
	n := NewNotices()

	n.PostOnce("voices", "no voices")
	n.PostOnce("voices", "no voices")
	n.PostOnce("persistence", "storage down")

	got := n.Drain()
	assert.Len(t, got, 2)

	// Still suppressed after a drain
	n.PostOnce("voices", "no voices")
	assert.Empty(t, n.Drain())
}

func TestNotices_KeepsNewest(t *testing.T) {
	n := NewNotices()
	for i := range maxNotices + 5 {
		n.Post(fmt.Sprintf("notice %d", i))
	}

	got := n.Drain()
	assert.Len(t, got, maxNotices)
	assert.Equal(t, "notice 5", got[0].Message)
	assert.Equal(t, fmt.Sprintf("notice %d", maxNotices+4), got[len(got)-1].Message)
}
