package history

import (
	"fmt"
	"time"

	"github.com/tubemux/tubemux/pipeline"
)

// SavedDownload is a published video preserved in the user's history.
type SavedDownload struct {
	VideoID   string    `json:"video_id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Output    string    `json:"output"`
	Subtitles string    `json:"subtitles,omitempty"`
	Playlist  string    `json:"playlist,omitempty"`
	Count     int       `json:"count"`
	At        time.Time `json:"at"`
}

func (s *SavedDownload) encode() string {
	if s.VideoID != "" {
		return s.VideoID
	}
	return s.URL
}

func (s *SavedDownload) String() string {
	return fmt.Sprintf("%s -> %s", s.Title, s.Output)
}

func newSavedDownload(result pipeline.Result, playlist string) *SavedDownload {
	return &SavedDownload{
		VideoID:   result.VideoID,
		URL:       result.URL,
		Title:     result.Title,
		Output:    result.Output,
		Subtitles: result.Subtitles,
		Playlist:  playlist,
		Count:     1,
		At:        time.Now(),
	}
}
