package downloader

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oshokin/downonspot-settings/internal/strictjson"
)

// Quality is the requested audio bitrate in kbps.
type Quality string

const (
	// Quality128 requests 128 kbps audio.
	Quality128 Quality = "128"
	// Quality160 requests 160 kbps audio.
	Quality160 Quality = "160"
	// Quality320 requests 320 kbps audio.
	Quality320 Quality = "320"
)

const (
	// DefaultConcurrentDownloads is the number of tracks fetched in parallel.
	DefaultConcurrentDownloads = 4
	// DefaultPath is the directory downloads are written to.
	DefaultPath = "downloads"
	// DefaultFilenameTemplate names downloaded files.
	DefaultFilenameTemplate = "%artist% - %title%"
	// DefaultSeparator joins multiple artist names.
	DefaultSeparator = ", "
)

// ErrUnknownQuality is returned when a quality value is not one of the supported bitrates.
var ErrUnknownQuality = errors.New("unknown quality")

// Config holds the downloader options persisted alongside account settings.
type Config struct {
	// ConcurrentDownloads limits parallel track downloads.
	ConcurrentDownloads uint `json:"concurrent_downloads" yaml:"concurrent_downloads"`
	// Quality is the preferred audio bitrate.
	Quality Quality `json:"quality" yaml:"quality"`
	// Path is the output directory.
	Path string `json:"path" yaml:"path"`
	// FilenameTemplate is expanded per track, e.g. "%artist% - %title%".
	FilenameTemplate string `json:"filename_template" yaml:"filename_template"`
	// ID3v24 selects ID3v2.4 tags instead of ID3v2.3.
	ID3v24 bool `json:"id3v24" yaml:"id3v24"`
	// ConvertToMP3 transcodes downloaded audio to MP3.
	ConvertToMP3 bool `json:"convert_to_mp3" yaml:"convert_to_mp3"`
	// Separator joins multiple artists in tags and file names.
	Separator string `json:"separator" yaml:"separator"`
	// SkipExisting skips tracks whose target file already exists.
	SkipExisting bool `json:"skip_existing" yaml:"skip_existing"`
}

// NewConfig returns the default downloader configuration.
func NewConfig() Config {
	return Config{
		ConcurrentDownloads: DefaultConcurrentDownloads,
		Quality:             Quality320,
		Path:                DefaultPath,
		FilenameTemplate:    DefaultFilenameTemplate,
		ID3v24:              true,
		ConvertToMP3:        false,
		Separator:           DefaultSeparator,
		SkipExisting:        true,
	}
}

// UnmarshalJSON decodes the downloader block and rejects it when any field is missing.
func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config

	if err := strictjson.RequireFields(data, plain{}); err != nil {
		return fmt.Errorf("downloader: %w", err)
	}

	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*c = Config(decoded)

	return nil
}

// ParseQuality converts a string such as "320" into a Quality.
func ParseQuality(s string) (Quality, error) {
	switch q := Quality(s); q {
	case Quality128, Quality160, Quality320:
		return q, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownQuality, s)
	}
}

// String implements fmt.Stringer.
func (q Quality) String() string {
	return string(q)
}

// MarshalJSON rejects values that ParseQuality would not accept.
func (q Quality) MarshalJSON() ([]byte, error) {
	if _, err := ParseQuality(string(q)); err != nil {
		return nil, err
	}

	return json.Marshal(string(q))
}

// UnmarshalJSON decodes and validates a quality value.
func (q *Quality) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode quality: %w", err)
	}

	parsed, err := ParseQuality(raw)
	if err != nil {
		return err
	}

	*q = parsed

	return nil
}
