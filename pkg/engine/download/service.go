// Lantern: Content-source extensions and a host harness for manga readers.
// Copyright (C) 2025 Luca M. Schmidt (LuMiSxh)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package download

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
	"sync"
	"time"

	"Lantern/pkg/core"
	"Lantern/pkg/engine/logger"
	"Lantern/pkg/engine/network"
	"Lantern/pkg/errors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ImageSource resolves and fetches page images the way its site expects
type ImageSource interface {
	ID() string
	Client() *network.Client
	FetchImageURL(ctx context.Context, page core.Page) (string, error)
	ImageRequest(ctx context.Context, page core.Page) (*network.Request, error)
}

// Service downloads chapter pages to disk with a bounded worker pool
type Service struct {
	logger      logger.Logger
	concurrency int
	throttle    time.Duration
}

// NewService creates a new download service
func NewService(logger logger.Logger) *Service {
	return &Service{
		logger:      logger,
		concurrency: 3,
	}
}

// SetConcurrency sets the number of concurrent downloads
func (s *Service) SetConcurrency(n int) {
	if n > 0 {
		s.concurrency = n
	}
}

// SetThrottle sets the delay each worker waits before a download
func (s *Service) SetThrottle(d time.Duration) {
	s.throttle = d
}

// DownloadPages saves every page into destDir as NNN.ext and returns the written paths in page order
func (s *Service) DownloadPages(ctx context.Context, src ImageSource, pages []core.Page, destDir string) ([]string, error) {
	if len(pages) == 0 {
		return nil, errors.New("chapter has no pages").AsSource(src.ID()).Error()
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, errors.Track(err).
			WithContext("directory", destDir).
			AsFileSystem().
			Error()
	}

	s.logger.Info("Downloading %d pages from %s to %s", len(pages), src.ID(), destDir)

	type job struct {
		page     core.Page
		position int
	}

	jobs := make(chan job, len(pages))
	var (
		mu      sync.Mutex
		written = make(map[int]string, len(pages))
		errs    []error
		wg      sync.WaitGroup
	)

	workers := core.GetConcurrency(ctx, s.concurrency)
	if workers > len(pages) {
		workers = len(pages)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if ctx.Err() != nil {
					mu.Lock()
					errs = append(errs, ctx.Err())
					mu.Unlock()
					return
				}

				path, err := s.downloadPage(ctx, src, j.page, j.position, destDir)

				mu.Lock()
				if err != nil {
					errs = append(errs, err)
				} else {
					written[j.position] = path
				}
				mu.Unlock()
			}
		}()
	}

	for i, page := range pages {
		jobs <- job{page: page, position: i}
	}
	close(jobs)
	wg.Wait()

	positions := make([]int, 0, len(written))
	for pos := range written {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	paths := make([]string, 0, len(positions))
	for _, pos := range positions {
		paths = append(paths, written[pos])
	}

	if len(errs) > 0 {
		return paths, errors.Track(errors.Join(errs...)).
			WithContext("failed_pages", len(errs)).
			AsDownload().
			Error()
	}
	return paths, nil
}

// downloadPage resolves the image URL if needed and writes the image through a temp file
func (s *Service) downloadPage(ctx context.Context, src ImageSource, page core.Page, position int, destDir string) (string, error) {
	if page.ImageURL == "" {
		imageURL, err := src.FetchImageURL(ctx, page)
		if err != nil {
			return "", errors.Track(err).WithContext("page", page.Index).AsSource(src.ID()).Error()
		}
		page.ImageURL = imageURL
	}

	name := fmt.Sprintf("%03d", position+1)
	ext := extractExtension(page.ImageURL)
	if existing, ok := existingFile(destDir, name, ext); ok {
		s.logger.Debug("File already exists: %s", existing)
		return existing, nil
	}

	if s.throttle > 0 {
		select {
		case <-time.After(s.throttle):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	req, err := src.ImageRequest(ctx, page)
	if err != nil {
		return "", errors.Track(err).WithContext("page", page.Index).AsSource(src.ID()).Error()
	}

	s.logger.Debug("Downloading page %d: %s", position+1, req.URL)
	resp, err := src.Client().Do(ctx, req)
	if err != nil {
		return "", errors.Track(err).
			WithContext("url", req.URL).
			AsDownload().
			Error()
	}

	if ext == "" {
		ext = strings.TrimPrefix(mimetype.Detect(resp.Body).Extension(), ".")
	}
	if ext == "" {
		ext = "jpg"
	}
	destPath := filepath.Join(destDir, name+"."+ext)

	tempPath := filepath.Join(destDir, "."+name+"-"+uuid.NewString()+".tmp")
	if err := os.WriteFile(tempPath, resp.Body, 0644); err != nil {
		_ = os.Remove(tempPath)
		return "", errors.Track(err).
			WithContext("file", tempPath).
			AsFileSystem().
			Error()
	}
	if err := os.Rename(tempPath, destPath); err != nil {
		_ = os.Remove(tempPath)
		return "", errors.Track(err).
			WithContext("file", destPath).
			AsFileSystem().
			Error()
	}

	return destPath, nil
}

// existingFile finds a page written by an earlier run
func existingFile(dir, name, ext string) (string, bool) {
	if ext != "" {
		path := filepath.Join(dir, name+"."+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
		return "", false
	}
	matches, err := filepath.Glob(filepath.Join(dir, name+".*"))
	if err != nil || len(matches) == 0 {
		return "", false
	}
	return matches[0], true
}

const maxFilenameBytes = 100

// SanitizeFilename makes a string safe for use as a path component
func SanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)

	name = strings.TrimSpace(replacer.Replace(name))
	if len(name) > maxFilenameBytes {
		cut := maxFilenameBytes
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut]
	}
	if name == "" {
		name = "_"
	}
	return name
}

// extractExtension returns the extension of the last path segment of a URL
func extractExtension(rawURL string) string {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}
	return strings.TrimPrefix(filepath.Ext(filepath.Base("/"+path)), ".")
}
