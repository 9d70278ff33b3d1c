package source

// Playlist is an ordered list of videos, processed strictly in order.
type Playlist struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Entries []*Entry `json:"entries"`
}

// Entry is one member of a playlist.
type Entry struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// URLs returns the entry URLs in playlist order.
func (p *Playlist) URLs() []string {
	urls := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		urls[i] = e.URL
	}
	return urls
}
