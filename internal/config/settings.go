package config

import (
	"encoding/json"

	"github.com/oshokin/downonspot-settings/internal/downloader"
	"github.com/oshokin/downonspot-settings/internal/strictjson"
)

// DefaultRefreshUISeconds is the default UI refresh interval.
const DefaultRefreshUISeconds = 1

// Settings holds everything the client persists between runs.
// Password and ClientSecret are stored in plaintext.
type Settings struct {
	// Username is the streaming account login.
	Username string `json:"username" yaml:"username"`
	// Password is the streaming account password.
	Password string `json:"password" yaml:"password"`
	// ClientID is the API application client ID.
	ClientID string `json:"client_id" yaml:"client_id"`
	// ClientSecret is the API application client secret.
	ClientSecret string `json:"client_secret" yaml:"client_secret"`
	// RefreshUISeconds is how often the client redraws progress.
	RefreshUISeconds uint64 `json:"refresh_ui_seconds" yaml:"refresh_ui_seconds"`
	// Downloader is the nested downloader configuration.
	Downloader downloader.Config `json:"downloader" yaml:"downloader"`
}

// New builds Settings from credentials with default values for everything else.
func New(username, password, clientID, clientSecret string) *Settings {
	return &Settings{
		Username:         username,
		Password:         password,
		ClientID:         clientID,
		ClientSecret:     clientSecret,
		RefreshUISeconds: DefaultRefreshUISeconds,
		Downloader:       downloader.NewConfig(),
	}
}

// Clone returns a copy of the settings.
func (s *Settings) Clone() *Settings {
	if s == nil {
		return nil
	}

	cloned := *s

	return &cloned
}

// UnmarshalJSON decodes settings and rejects documents missing any field.
func (s *Settings) UnmarshalJSON(data []byte) error {
	type plain Settings

	if err := strictjson.RequireFields(data, plain{}); err != nil {
		return err
	}

	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*s = Settings(decoded)

	return nil
}
