package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// [Duration] fields that accept strings like "30s".
type StructuredJSONConfig struct {
	App struct {
		Version               string `json:"version"`
		LogLevel              string `json:"log_level"`
		PasswordHashAlgorithm string `json:"password_hash_algorithm"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress        string   `json:"http_address"`
		GRPCAddress        string   `json:"grpc_address"`
		RequestTimeout     Duration `json:"request_timeout"`
		HideInternalErrors bool     `json:"hide_internal_errors"`
		AllowedOrigins     []string `json:"allowed_origins"`
	} `json:"server,omitempty"`

	Media struct {
		Driver         string   `json:"driver"`
		Namespace      string   `json:"namespace"`
		RequestTimeout Duration `json:"request_timeout"`
		Cloudinary     struct {
			CloudName string `json:"cloud_name"`
			APIKey    string `json:"api_key"`
			APISecret string `json:"api_secret"`
			BaseURL   string `json:"base_url"`
		} `json:"cloudinary,omitempty"`
		S3 struct {
			Bucket       string `json:"bucket"`
			Region       string `json:"region"`
			Endpoint     string `json:"endpoint"`
			AccessKey    string `json:"access_key"`
			SecretKey    string `json:"secret_key"`
			PublicURL    string `json:"public_url"`
			UsePathStyle bool   `json:"use_path_style"`
		} `json:"s3,omitempty"`
		Local struct {
			Dir       string `json:"dir"`
			PublicURL string `json:"public_url"`
		} `json:"local,omitempty"`
	} `json:"media,omitempty"`

	Workers struct {
		HealthCheckInterval Duration `json:"health_check_interval"`
	} `json:"workers,omitempty"`
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

	m := jsonCfg.Media
	cfg := &StructuredConfig{
		App: App{
			Version:               jsonCfg.App.Version,
			LogLevel:              jsonCfg.App.LogLevel,
			PasswordHashAlgorithm: jsonCfg.App.PasswordHashAlgorithm,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:        jsonCfg.Server.HTTPAddress,
			GRPCAddress:        jsonCfg.Server.GRPCAddress,
			RequestTimeout:     time.Duration(jsonCfg.Server.RequestTimeout),
			HideInternalErrors: jsonCfg.Server.HideInternalErrors,
			AllowedOrigins:     jsonCfg.Server.AllowedOrigins,
		},
		Media: Media{
			Driver:         m.Driver,
			Namespace:      m.Namespace,
			RequestTimeout: time.Duration(m.RequestTimeout),
			Cloudinary: Cloudinary{
				CloudName: m.Cloudinary.CloudName,
				APIKey:    m.Cloudinary.APIKey,
				APISecret: m.Cloudinary.APISecret,
				BaseURL:   m.Cloudinary.BaseURL,
			},
			S3: S3{
				Bucket:       m.S3.Bucket,
				Region:       m.S3.Region,
				Endpoint:     m.S3.Endpoint,
				AccessKey:    m.S3.AccessKey,
				SecretKey:    m.S3.SecretKey,
				PublicURL:    m.S3.PublicURL,
				UsePathStyle: m.S3.UsePathStyle,
			},
			Local: Local{
				Dir:       m.Local.Dir,
				PublicURL: m.Local.PublicURL,
			},
		},
		Workers: Workers{
			HealthCheckInterval: time.Duration(jsonCfg.Workers.HealthCheckInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
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
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
