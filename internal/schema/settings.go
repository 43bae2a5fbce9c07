package schema

import (
	"encoding/json"
	"fmt"
)

// GlobalSettings is the shared configuration that seeds newly created
// boards. It is durable but not versioned per board: a board copies the
// seeds at creation time and never looks back.
type GlobalSettings struct {
	APIKey   string   `json:"api_key"`
	UserName string   `json:"user_name"`
	Notes    string   `json:"notes"`
	Memories []Memory `json:"memories"`
	Log      []string `json:"log"`
}

// DefaultGlobalSettings returns settings for a fresh installation.
func DefaultGlobalSettings() *GlobalSettings {
	return &GlobalSettings{
		Memories: []Memory{},
		Log:      []string{},
	}
}

// AppendLog records one activity line in the settings log.
func (s *GlobalSettings) AppendLog(line string) {
	s.Log = append(s.Log, line)
}

// DecodeSettings parses a settings document, tolerating missing fields.
func DecodeSettings(data []byte) (*GlobalSettings, error) {
	obj, err := splitObject(data)
	if err != nil {
		return nil, err
	}

	s := DefaultGlobalSettings()
	if err := obj.get(&s.APIKey, "api_key", "apiKey"); err != nil {
		return nil, err
	}
	if err := obj.get(&s.UserName, "user_name", "userName"); err != nil {
		return nil, err
	}
	if err := obj.get(&s.Notes, "notes"); err != nil {
		return nil, err
	}
	if err := obj.get(&s.Memories, "memories"); err != nil {
		return nil, err
	}
	if err := obj.get(&s.Log, "log"); err != nil {
		return nil, err
	}
	if s.Memories == nil {
		s.Memories = []Memory{}
	}
	if s.Log == nil {
		s.Log = []string{}
	}
	return s, nil
}

// EncodeSettings serializes settings with indentation and stable key order.
func EncodeSettings(s *GlobalSettings) ([]byte, error) {
	if s.Memories == nil {
		s.Memories = []Memory{}
	}
	if s.Log == nil {
		s.Log = []string{}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	return data, nil
}
