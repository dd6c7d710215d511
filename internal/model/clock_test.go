package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock(t *testing.T) {
	now := time.Unix(1000, 0)
	c := NewClock(time.Minute)
	c.now = func() time.Time { return now }

	assert.Equal(t, 600, c.Tenths())

	c.Start()
	now = now.Add(5 * time.Second)
	assert.Equal(t, 55*time.Second, c.GetTimeLeft())

	c.Stop()
	now = now.Add(time.Hour)
	assert.Equal(t, 55*time.Second, c.GetTimeLeft())

	c.Stop()
	assert.Equal(t, 550, c.Tenths())
}
