package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string durations.
type StructuredJSONConfig struct {
	App struct {
		Pepper        string `json:"pepper"`
		Cipher        string `json:"cipher"`
		KDFTime       uint32 `json:"kdf_time"`
		KDFMemoryKiB  uint32 `json:"kdf_memory_kib"`
		KDFThreads    uint8  `json:"kdf_threads"`
		SeedTemplates bool   `json:"seed_templates"`
	} `json:"app,omitempty"`

	Storage struct {
		Driver string `json:"driver"`
		DSN    string `json:"dsn"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	MasterUser struct {
		Username     string `json:"username"`
		PasswordHash string `json:"password_hash"`
	} `json:"master_user,omitempty"`

	Sync struct {
		RemoteURL      string   `json:"remote_url"`
		DatasetFile    string   `json:"dataset_file"`
		PushURL        string   `json:"push_url"`
		SigningKey     string   `json:"signing_key"`
		RequestTimeout Duration `json:"request_timeout"`
		Interval       Duration `json:"interval"`
	} `json:"sync,omitempty"`

	Log struct {
		Level string `json:"level"`
		File  string `json:"file"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Pepper:        jsonCfg.App.Pepper,
			Cipher:        jsonCfg.App.Cipher,
			KDFTime:       jsonCfg.App.KDFTime,
			KDFMemoryKiB:  jsonCfg.App.KDFMemoryKiB,
			KDFThreads:    jsonCfg.App.KDFThreads,
			SeedTemplates: jsonCfg.App.SeedTemplates,
		},
		Storage: Storage{
			Driver: jsonCfg.Storage.Driver,
			DSN:    jsonCfg.Storage.DSN,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		MasterUser: MasterUser{
			Username:     jsonCfg.MasterUser.Username,
			PasswordHash: jsonCfg.MasterUser.PasswordHash,
		},
		Sync: Sync{
			RemoteURL:      jsonCfg.Sync.RemoteURL,
			DatasetFile:    jsonCfg.Sync.DatasetFile,
			PushURL:        jsonCfg.Sync.PushURL,
			SigningKey:     jsonCfg.Sync.SigningKey,
			RequestTimeout: time.Duration(jsonCfg.Sync.RequestTimeout),
			Interval:       time.Duration(jsonCfg.Sync.Interval),
		},
		Log: Log{
			Level: jsonCfg.Log.Level,
			File:  jsonCfg.Log.File,
		},
	}

	return cfg, nil
}

// Duration unmarshals JSON strings like "1h" or "30s" and plain nanosecond
// numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
