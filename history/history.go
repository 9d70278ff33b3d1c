// Package history keeps track of the videos that were published.
package history

import (
	"errors"
	"slices"

	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/tubemux/tubemux/filesystem"
	"github.com/tubemux/tubemux/pipeline"
	"github.com/tubemux/tubemux/where"
)

// cacher provides a disk-backed registry of published downloads.
var cacher = gache.New[map[string]*SavedDownload](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every saved download keyed by video.
func Get() (map[string]*SavedDownload, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedDownload), nil
	}
	return cached, nil
}

// List returns the saved downloads, most recent first.
func List() ([]*SavedDownload, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	list := lo.Values(saved)
	slices.SortFunc(list, func(a, b *SavedDownload) int {
		return b.At.Compare(a.At)
	})
	return list, nil
}

// Save records a published video. Failed results are rejected.
func Save(result pipeline.Result, playlist string) error {
	if !result.OK() {
		return errors.New("only published videos are saved")
	}

	saved, err := Get()
	if err != nil {
		return err
	}

	record := newSavedDownload(result, playlist)
	if existing, ok := saved[record.encode()]; ok {
		record.Count = existing.Count + 1
		if record.Playlist == "" {
			record.Playlist = existing.Playlist
		}
	}
	saved[record.encode()] = record

	return cacher.Set(saved)
}

// Remove deletes a saved download.
func Remove(download *SavedDownload) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, download.encode())
	return cacher.Set(saved)
}
