package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	now := time.Unix(1000000000, 0)
	c := Fixed(now)
	assert.Equal(t, now, c.Now())
	assert.Equal(t, c.Now(), c.Now())
}

func TestStandard(t *testing.T) {
	before := time.Now()
	got := Standard().Now()
	assert.False(t, got.Before(before))
}
