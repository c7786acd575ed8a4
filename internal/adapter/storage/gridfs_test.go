package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	s := &GridFS{publicURL: "https://pos.example.com"}

	assert.Equal(t, "https://pos.example.com/storage/bg-1700000000000.png", s.PublicURL("bg-1700000000000.png"))
	assert.Equal(t, "https://pos.example.com/storage/a%20b.jpg", s.PublicURL("a b.jpg"))
}
