package attachment

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/reconquest/karma-go"
	"github.com/reconquest/pkg/log"
)

// Attachment is one rendered diagram asset placed into the assets directory
// next to a document.
type Attachment struct {
	Name      string
	Filename  string
	FileBytes []byte
	Checksum  string
}

var reUnsafeName = regexp.MustCompile(`[^\w.-]+`)

// Filename builds the content-addressed asset name `<slug>-<hash><ext>`.
// The checksum must come from InputChecksum or GetChecksum; only its first
// eight characters end up in the name.
func Filename(title, checksum, ext string) string {
	slug := strings.Trim(reUnsafeName.ReplaceAllString(title, "-"), "-")
	if slug == "" {
		slug = "d2"
	}
	return slug + "-" + checksum[:8] + ext
}

// InputChecksum hashes diagram code together with the projected render
// flags, so any change in either produces a new asset name while identical
// diagrams keep reusing the stored file.
func InputChecksum(code string, args []string) string {
	hash := sha256.New()
	hash.Write([]byte(code))
	for _, arg := range args {
		hash.Write([]byte{0})
		hash.Write([]byte(arg))
	}
	return hex.EncodeToString(hash.Sum(nil))
}

// GetChecksum hashes a stream of file contents.
func GetChecksum(reader io.Reader) (string, error) {
	hash := sha256.New()
	if _, err := io.Copy(hash, reader); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// Open probes the assets directory for an already rendered file. It reports
// false when the asset has to be rendered.
func Open(dir, filename string) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Store writes the attachment into dir, creating the directory as needed.
// A file that already carries the same content-addressed name is left
// alone; the returned flag tells whether anything was written.
func Store(dir string, attachment Attachment) (bool, error) {
	path := filepath.Join(dir, attachment.Filename)

	if _, err := os.Stat(path); err == nil {
		log.Debugf(nil, "attachment %q is up to date", path)
		return false, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, karma.Format(err, "unable to create attachments directory %q", dir)
	}

	if err := os.WriteFile(path, attachment.FileBytes, 0o644); err != nil {
		return false, karma.Format(err, "unable to write attachment %q", path)
	}

	log.Debugf(nil, "attachment %q stored", path)

	return true, nil
}
