package constant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackTitle(t *testing.T) {
	assert.Equal(t, "Backend Development", TrackTitle("backend"))
	assert.Equal(t, "Web3 & Blockchain", TrackTitle("web3"))
	assert.Equal(t, "Game Development", TrackTitle("Game Development"))
	assert.Len(t, Tracks, 6)
}
