package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/pixelsmash/levels"
)

// Path is where filename lives inside the output directory.
func (s *Session) Path(filename string) string {
	return filepath.Join(s.outputDir, filename)
}

// Save writes the level to the output directory. An empty filename reuses
// the current one; a session still on DefaultFileName takes its file name
// from the level name instead. The outcome is also left in Status.
func (s *Session) Save(filename string) error {
	switch {
	case filename != "":
		s.FileName = filename
	case s.FileName == DefaultFileName && s.Level.Name != "":
		s.FileName = levels.FileName(s.Level.Name)
	}
	s.FileName = levels.WithExt(s.FileName)

	path := s.Path(s.FileName)
	if err := levels.Save(s.Level, path); err != nil {
		s.fail("Save failed", err)
		return err
	}
	s.Status = "Saved to " + filepath.Base(path)
	s.log.WithFields(logrus.Fields{
		"path":   path,
		"width":  s.Level.Width(),
		"height": s.Level.Height(),
	}).Info("saved level")
	return nil
}

// SaveTimestamped saves under level_YYYYMMDD_HHMMSS.level for now.
func (s *Session) SaveTimestamped(now time.Time) error {
	return s.Save(levels.TimestampedName(now))
}

// Load replaces the level with filename from the output directory, or with
// the current file when filename is empty. On failure the level is kept.
func (s *Session) Load(filename string) error {
	name := filename
	if name == "" {
		name = s.FileName
	}
	name = levels.WithExt(name)
	path := s.Path(name)
	defer s.ClampCamera()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		s.Status = "No file named " + name
		s.log.WithField("path", path).Warn("level file not found")
		return fmt.Errorf("editor: load %s: %w", name, err)
	}

	l, err := levels.Load(path)
	if err != nil {
		s.fail("Load failed", err)
		return err
	}
	s.Level = l
	s.FileName = filepath.Base(path)
	s.Status = "Loaded " + s.FileName
	s.log.WithFields(logrus.Fields{
		"path":   path,
		"name":   l.Name,
		"width":  l.Width(),
		"height": l.Height(),
	}).Info("loaded level")
	return nil
}
