package portfolio

import "regexp"

// Типы видеохостингов, которые умеем встраивать.
const (
	VideoTypeYouTube = "youtube"
	VideoTypeVimeo   = "vimeo"
)

// VideoInfo — результат разбора ссылки на видео.
// Пустой Type означает нераспознанную ссылку: секция видео просто не рендерится.
type VideoInfo struct {
	Type  string
	ID    string
	Embed string
	Thumb string
}

var (
	youtubePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
	}
	vimeoPatterns = []*regexp.Regexp{
		regexp.MustCompile(`vimeo\.com/(\d+)`),
		regexp.MustCompile(`player\.vimeo\.com/video/(\d+)`),
	}
)

// ParseVideoURL классифицирует ссылку как YouTube или Vimeo и извлекает идентификатор.
// Для YouTube дополнительно доступна превью-картинка; Vimeo требует отдельного
// запроса к их API, поэтому превью не возвращается.
func ParseVideoURL(url string) VideoInfo {
	if url == "" {
		return VideoInfo{}
	}

	for _, pattern := range youtubePatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			id := m[1]
			return VideoInfo{
				Type:  VideoTypeYouTube,
				ID:    id,
				Embed: "https://www.youtube.com/embed/" + id,
				Thumb: "https://img.youtube.com/vi/" + id + "/hqdefault.jpg",
			}
		}
	}

	for _, pattern := range vimeoPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			id := m[1]
			return VideoInfo{
				Type:  VideoTypeVimeo,
				ID:    id,
				Embed: "https://player.vimeo.com/video/" + id,
			}
		}
	}

	return VideoInfo{}
}

// IsValidVideoURL сообщает, распознана ли ссылка.
func IsValidVideoURL(url string) bool {
	return ParseVideoURL(url).Type != ""
}
