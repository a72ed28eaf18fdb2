package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVideoURL_YouTubeShortLink(t *testing.T) {
	info := ParseVideoURL("https://youtu.be/dQw4w9WgXcQ")

	assert.Equal(t, VideoTypeYouTube, info.Type)
	assert.Equal(t, "dQw4w9WgXcQ", info.ID)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", info.Embed)
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", info.Thumb)
}

func TestParseVideoURL_YouTubeVariants(t *testing.T) {
	urls := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ",
	}

	for _, url := range urls {
		info := ParseVideoURL(url)
		assert.Equal(t, VideoTypeYouTube, info.Type, url)
		assert.Equal(t, "dQw4w9WgXcQ", info.ID, url)
	}
}

func TestParseVideoURL_Vimeo(t *testing.T) {
	info := ParseVideoURL("https://vimeo.com/12345")

	assert.Equal(t, VideoTypeVimeo, info.Type)
	assert.Equal(t, "12345", info.ID)
	assert.Equal(t, "https://player.vimeo.com/video/12345", info.Embed)
	// Превью Vimeo требует отдельного запроса к API и намеренно не возвращается.
	assert.Empty(t, info.Thumb)
}

func TestParseVideoURL_VimeoPlayerLink(t *testing.T) {
	info := ParseVideoURL("https://player.vimeo.com/video/987654")

	assert.Equal(t, VideoTypeVimeo, info.Type)
	assert.Equal(t, "987654", info.ID)
}

func TestParseVideoURL_Unrecognized(t *testing.T) {
	info := ParseVideoURL("https://example.com/video")

	assert.Empty(t, info.Type)
	assert.Empty(t, info.ID)
	assert.Empty(t, info.Embed)
	assert.Empty(t, info.Thumb)
	assert.False(t, IsValidVideoURL("https://example.com/video"))
}

func TestParseVideoURL_EmptyString(t *testing.T) {
	assert.Empty(t, ParseVideoURL("").Type)
}
