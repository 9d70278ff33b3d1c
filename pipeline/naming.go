package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/tubemux/tubemux/util"
)

// OutputName derives the published file name from a video title.
//
// With sanitize the util.SanitizeFilename rules apply, otherwise
// the title is kept and only path separators are replaced. An empty result falls
// back to the video ID, then to "video".
func OutputName(title, id, ext string, sanitize bool) string {
	clean := util.EscapePathSeparators
	if sanitize {
		clean = util.SanitizeFilename
	}

	name := clean(title)
	if name == "" {
		name = clean(id)
	}
	if name == "" {
		name = "video"
	}

	return name + "." + strings.TrimPrefix(ext, ".")
}

// VideoScratchDir returns the scratch directory of one video. Every video gets
// its own, so artifacts kept after a failure survive the next playlist entry.
func VideoScratchDir(outputDir, id string) string {
	name := util.SanitizeFilename(id)
	if name == "" {
		name = "video"
	}
	return filepath.Join(ScratchDir(outputDir), name)
}
