package attachment

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		checksum string
		ext      string
		want     string
	}{
		{"titled", "Network Topology", "58fa387384181445", ".svg", "Network-Topology-58fa3873.svg"},
		{"untitled", "", "58fa387384181445", ".png", "d2-58fa3873.png"},
		{"path characters stripped", "a/b\\c", "0011223344556677", ".svg", "a-b-c-00112233.svg"},
		{"dots kept", "v1.2", "0011223344556677", ".gif", "v1.2-00112233.gif"},
		{"only unsafe characters", "///", "0011223344556677", ".svg", "d2-00112233.svg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.title, tt.checksum, tt.ext))
		})
	}
}

func TestInputChecksum(t *testing.T) {
	base := InputChecksum("x -> y", []string{"--pad=10"})

	assert.Len(t, base, 64)
	assert.Equal(t, base, InputChecksum("x -> y", []string{"--pad=10"}))
	assert.NotEqual(t, base, InputChecksum("x -> z", []string{"--pad=10"}))
	assert.NotEqual(t, base, InputChecksum("x -> y", []string{"--pad=20"}))
	assert.NotEqual(t, base, InputChecksum("x -> y", nil))

	// argument boundaries must matter
	assert.NotEqual(t,
		InputChecksum("x", []string{"ab", "c"}),
		InputChecksum("x", []string{"a", "bc"}),
	)
}

func TestGetChecksum(t *testing.T) {
	checksum, err := GetChecksum(strings.NewReader("hello world"))

	assert.NoError(t, err)
	assert.Equal(t, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", checksum)
}

func TestStoreAndOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "d2")

	_, found := Open(dir, "x-00000000.svg")
	assert.False(t, found)

	created, err := Store(dir, Attachment{
		Filename:  "x-00000000.svg",
		FileBytes: []byte("<svg/>"),
	})
	assert.NoError(t, err)
	assert.True(t, created)

	data, found := Open(dir, "x-00000000.svg")
	assert.True(t, found)
	assert.Equal(t, []byte("<svg/>"), data)

	// same name is a cache hit, the file is not rewritten
	created, err = Store(dir, Attachment{
		Filename:  "x-00000000.svg",
		FileBytes: []byte("<svg>other</svg>"),
	})
	assert.NoError(t, err)
	assert.False(t, created)

	data, _ = Open(dir, "x-00000000.svg")
	assert.Equal(t, []byte("<svg/>"), data)

	info, err := os.Stat(filepath.Join(dir, "x-00000000.svg"))
	assert.NoError(t, err)
	assert.False(t, info.IsDir())
}
